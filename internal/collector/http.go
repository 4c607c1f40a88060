package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"connwatch/internal/stats"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPSource polls a stats API endpoint that returns a JSON array with one
// object per monitored connection.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source polling the given URL. timeout bounds each
// request; zero means 5 seconds.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string { return "http" }

// Poll fetches the endpoint and flattens each connection object.
func (s *HTTPSource) Poll(ctx context.Context) ([]stats.ConnectionStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stats: unexpected status %s", resp.Status)
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	conns := make([]stats.ConnectionStats, 0, len(raw))
	for _, obj := range raw {
		conns = append(conns, Flatten(obj))
	}
	return conns, nil
}

func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
