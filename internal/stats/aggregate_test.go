package stats

import (
	"reflect"
	"slices"
	"testing"
	"time"
)

func mustTab(t *testing.T, spec string) *Tab {
	t.Helper()
	tab, err := ParseTab(spec)
	if err != nil {
		t.Fatalf("ParseTab(%q): %v", spec, err)
	}
	return tab
}

func TestAggregateNumericSum(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"rtt": Number(2.0)},
		{"rtt": Number(3.5)},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	sum, _, numeric := rows[0].Aggregate()
	if !numeric {
		t.Fatal("all-numeric key should aggregate as a sum")
	}
	if sum != 5.5 {
		t.Fatalf("sum = %v, want 5.5", sum)
	}
}

func TestAggregateDistinctCount(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"state": Text("ok")},
		{"state": Text("ok")},
		{"state": Text("fail")},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	_, uniq, numeric := rows[0].Aggregate()
	if numeric {
		t.Fatal("text values should aggregate as a distinct count")
	}
	if uniq != 2 {
		t.Fatalf("uniq = %d, want 2", uniq)
	}
}

func TestAggregateMixedPrefersDistinctCount(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"bitrate": Number(500)},
		{"bitrate": Text("n/a")},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	_, uniq, numeric := rows[0].Aggregate()
	if numeric {
		t.Fatal("a single non-numeric value must switch the key to distinct-count")
	}
	if uniq != 2 {
		t.Fatalf("uniq = %d, want 2", uniq)
	}
}

func TestAggregateDeduplicatesBeforeSum(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"rtt": Number(10)},
		{"rtt": Number(10)},
		{"rtt": Number(5)},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	sum, _, _ := rows[0].Aggregate()
	if sum != 15 {
		t.Fatalf("sum = %v, want 15 (duplicates collapse into a set)", sum)
	}
}

func TestAggregateIncludesWholeConnection(t *testing.T) {
	// The filter matches on codec, but the matching connection's other keys
	// must be aggregated too.
	snap := Snapshot{Connections: []ConnectionStats{
		{"codec": Text("VP9"), "rtt": Number(20)},
		{"codec": Text("H264"), "rtt": Number(99)},
	}}
	rows := Aggregate(snap, mustTab(t, "vp9=codec:VP9"))

	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	if !reflect.DeepEqual(keys, []string{"codec", "rtt"}) {
		t.Fatalf("keys = %v, want [codec rtt]", keys)
	}

	for _, r := range rows {
		if r.Key == "rtt" {
			sum, _, _ := r.Aggregate()
			if sum != 20 {
				t.Fatalf("rtt sum = %v, want 20 (only the matching connection)", sum)
			}
		}
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	conns := []ConnectionStats{
		{"rtt": Number(1), "codec": Text("VP9")},
		{"rtt": Number(2), "codec": Text("VP8")},
		{"rtt": Number(3), "codec": Text("VP9")},
	}
	snap := Snapshot{Time: time.Now(), Connections: conns}
	tab := mustTab(t, "total=.*:.*")
	want := Aggregate(snap, tab)

	perm := slices.Clone(conns)
	perm[0], perm[2] = perm[2], perm[0]
	got := Aggregate(Snapshot{Time: snap.Time, Connections: perm}, tab)

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("aggregation depends on connection order:\ngot  %v\nwant %v", got, want)
	}
}

func TestAggregateSortedByKey(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"zeta": Number(1), "alpha": Number(2), "mid": Number(3)},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Key >= rows[i].Key {
			t.Fatalf("rows not in ascending key order: %q >= %q", rows[i-1].Key, rows[i].Key)
		}
	}
}

func TestAggregateNoMatches(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"rtt": Number(1)},
	}}
	rows := Aggregate(snap, mustTab(t, "none=nothing:matches"))
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestAggregateEmptySnapshot(t *testing.T) {
	rows := Aggregate(Snapshot{}, mustTab(t, "total=.*:.*"))
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestValueCounts(t *testing.T) {
	snap := Snapshot{Connections: []ConnectionStats{
		{"state": Text("ok")},
		{"state": Text("ok")},
		{"state": Text("fail")},
	}}
	rows := Aggregate(snap, mustTab(t, "total=.*:.*"))

	counts := rows[0].ValueCounts()
	want := []ValueCount{
		{Value: Text("ok"), Count: 2},
		{Value: Text("fail"), Count: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("ValueCounts() = %v, want %v", counts, want)
	}
}
