// Package stats implements the retention, filtering, and aggregation engine
// behind the dashboard: snapshots of per-connection key/value statistics, a
// time-bounded history window, named regex filter tabs, and sum/distinct-count
// aggregation over the latest snapshot.
package stats

import (
	"strconv"
	"time"
)

// Value is a single statistic value: either a number or an opaque text value.
// Value is comparable, so it can key a map and collapse duplicates inside a
// set. Numbers compare by value, text by its canonical string form.
type Value struct {
	num  float64
	text string
	n    bool
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{num: f, n: true} }

// Text returns an opaque text value.
func Text(s string) Value { return Value{text: s} }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.n }

// Float returns the numeric value, or 0 for text values.
func (v Value) Float() float64 { return v.num }

// String renders the canonical form: numbers in shortest decimal notation,
// text as-is.
func (v Value) String() string {
	if v.n {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// ConnectionStats maps statistic keys to values for one connection at one
// instant. Key order is irrelevant.
type ConnectionStats map[string]Value

// Snapshot is one arrival of statistics for all monitored connections.
// Immutable once created; Time is the arrival timestamp.
type Snapshot struct {
	Time        time.Time
	Connections []ConnectionStats
}
