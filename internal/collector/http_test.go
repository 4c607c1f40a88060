package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connwatch/internal/stats"
)

func TestHTTPSourcePoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"channel_id": "spam", "rtc": {"rtt": 20}},
			{"channel_id": "egg", "rtc": {"rtt": 35.5}}
		]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	conns, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(conns) != 2 {
		t.Fatalf("got %d connections, want 2", len(conns))
	}
	if conns[0]["channel_id"] != stats.Text("spam") {
		t.Fatalf("channel_id = %v, want Text(spam)", conns[0]["channel_id"])
	}
	if conns[1]["rtc.rtt"] != stats.Number(35.5) {
		t.Fatalf("rtc.rtt = %v, want Number(35.5)", conns[1]["rtc.rtt"])
	}
}

func TestHTTPSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	if _, err := src.Poll(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestHTTPSourceBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	if _, err := src.Poll(context.Background()); err == nil {
		t.Fatal("expected error for non-array body")
	}
}
