package stats

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Tab is a named filter over a connection's statistics. A connection matches
// when at least one of its key/value pairs matches both patterns; values are
// matched against their canonical string form.
type Tab struct {
	Name string

	key   *regexp.Regexp
	value *regexp.Regexp
}

// ParseTab parses a textual tab spec "NAME=KEY_PATTERN:VALUE_PATTERN".
// The spec splits on the first '=' and the remainder on the first ':'.
func ParseTab(spec string) (*Tab, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return nil, fmt.Errorf("invalid tab spec %q (expected format: \"$NAME=$KEY_PATTERN:$VALUE_PATTERN\")", spec)
	}
	keyPat, valuePat, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, fmt.Errorf("invalid tab spec %q (expected format: \"$NAME=$KEY_PATTERN:$VALUE_PATTERN\")", spec)
	}

	key, err := regexp.Compile(keyPat)
	if err != nil {
		return nil, fmt.Errorf("tab %q: key pattern: %w", name, err)
	}
	value, err := regexp.Compile(valuePat)
	if err != nil {
		return nil, fmt.Errorf("tab %q: value pattern: %w", name, err)
	}

	return &Tab{Name: name, key: key, value: value}, nil
}

// ParseTabs parses tab specs in order. At least one spec is required; tabs
// are displayed and selected in the given order.
func ParseTabs(specs []string) ([]*Tab, error) {
	if len(specs) == 0 {
		return nil, errors.New("at least one tab must be configured")
	}
	tabs := make([]*Tab, 0, len(specs))
	for _, spec := range specs {
		t, err := ParseTab(spec)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}

// Matches reports whether any key/value pair in conn satisfies both patterns.
func (t *Tab) Matches(conn ConnectionStats) bool {
	for k, v := range conn {
		if t.key.MatchString(k) && t.value.MatchString(v.String()) {
			return true
		}
	}
	return false
}

// String round-trips the tab back to its spec form.
func (t *Tab) String() string {
	return fmt.Sprintf("%s=%s:%s", t.Name, t.key, t.value)
}
