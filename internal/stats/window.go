package stats

import (
	"slices"
	"time"
)

// Window is a time-ordered buffer of snapshots, oldest first. Entries older
// than the retention period are evicted lazily on ingestion, using the new
// snapshot's arrival time as "now" so eviction is deterministic per ingestion
// event. An optional entry cap bounds memory against a collector that emits
// faster than the retention period can drain.
type Window struct {
	retention  time.Duration
	maxEntries int // 0 = unbounded
	items      []Snapshot
}

// NewWindow creates a window with the given retention period and entry cap
// (0 for no cap).
func NewWindow(retention time.Duration, maxEntries int) *Window {
	return &Window{retention: retention, maxEntries: maxEntries}
}

// Ingest appends snap and evicts expired entries from the head. Eviction
// stops at the first still-fresh entry; the buffer is time-ordered, so all
// newer entries are fresh too.
func (w *Window) Ingest(snap Snapshot) {
	w.items = append(w.items, snap)

	cut := 0
	for cut < len(w.items) && snap.Time.Sub(w.items[cut].Time) >= w.retention {
		cut++
	}
	if cut > 0 {
		w.items = slices.Delete(w.items, 0, cut)
	}

	if w.maxEntries > 0 && len(w.items) > w.maxEntries {
		w.items = slices.Delete(w.items, 0, len(w.items)-w.maxEntries)
	}
}

// Latest returns the most recently ingested, still-retained snapshot.
// The second return is false when the window is empty.
func (w *Window) Latest() (Snapshot, bool) {
	if len(w.items) == 0 {
		return Snapshot{}, false
	}
	return w.items[len(w.items)-1], true
}

// Len returns the number of retained snapshots.
func (w *Window) Len() int { return len(w.items) }

// Snapshots returns the retained snapshots, oldest first. The returned slice
// is shared; callers must not mutate it.
func (w *Window) Snapshots() []Snapshot { return w.items }
