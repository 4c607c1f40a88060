package collector

import (
	"testing"

	"connwatch/internal/stats"
)

func TestFlattenScalars(t *testing.T) {
	got := Flatten(map[string]any{
		"rtt":    15.5,
		"codec":  "VP9",
		"simul":  true,
		"remote": nil,
	})

	want := stats.ConnectionStats{
		"rtt":    stats.Number(15.5),
		"codec":  stats.Text("VP9"),
		"simul":  stats.Text("true"),
		"remote": stats.Text("null"),
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("Flatten()[%q] = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
}

func TestFlattenNested(t *testing.T) {
	got := Flatten(map[string]any{
		"rtc": map[string]any{
			"rtt":    20.0,
			"codecs": []any{"VP9", "opus"},
		},
	})

	if got["rtc.rtt"] != stats.Number(20) {
		t.Fatalf("rtc.rtt = %v, want Number(20)", got["rtc.rtt"])
	}
	if got["rtc.codecs.0"] != stats.Text("VP9") {
		t.Fatalf("rtc.codecs.0 = %v, want Text(VP9)", got["rtc.codecs.0"])
	}
	if got["rtc.codecs.1"] != stats.Text("opus") {
		t.Fatalf("rtc.codecs.1 = %v, want Text(opus)", got["rtc.codecs.1"])
	}
}
