package stats

import "sort"

// Row is one statistic key's aggregated values for a tab, built from the
// latest snapshot. Values are deduplicated by equality; occurrence counts are
// kept for the detail view.
type Row struct {
	Key    string
	values map[Value]int
}

// Aggregate folds the row's value set into either a numeric sum or a distinct
// count. numeric is true iff every value in the set is a number; then sum is
// their total and uniq is unused. A single non-numeric value switches the row
// to the distinct-count branch, discarding any numeric contributions.
func (r *Row) Aggregate() (sum float64, uniq int, numeric bool) {
	for v := range r.values {
		if !v.IsNumber() {
			return 0, len(r.values), false
		}
		sum += v.Float()
	}
	return sum, 0, true
}

// Distinct returns the number of distinct values observed for the key.
func (r *Row) Distinct() int { return len(r.values) }

// ValueCount pairs a distinct value with its occurrence count across matching
// connections.
type ValueCount struct {
	Value Value
	Count int
}

// ValueCounts returns the row's distinct values with occurrence counts,
// ordered by count descending, then by canonical string form.
func (r *Row) ValueCounts() []ValueCount {
	out := make([]ValueCount, 0, len(r.values))
	for v, n := range r.values {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value.String() < out[j].Value.String()
	})
	return out
}

// Aggregate builds one row per statistic key observed across the snapshot's
// connections that match tab, ordered by key ascending. A connection that
// passes the filter contributes all of its pairs, not just the matching one.
// An empty result is valid output; no error is possible.
func Aggregate(snap Snapshot, tab *Tab) []Row {
	byKey := make(map[string]*Row)
	for _, conn := range snap.Connections {
		if !tab.Matches(conn) {
			continue
		}
		for k, v := range conn {
			row, ok := byKey[k]
			if !ok {
				row = &Row{Key: k, values: make(map[Value]int)}
				byKey[k] = row
			}
			row.values[v]++
		}
	}

	rows := make([]Row, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
