package catalog

import "log/slog"

// Accumulate appends a chunk's records to the running catalog, preserving
// arrival order. Duplicate sync IDs are never merged: a product split across a
// chunk boundary legitimately shows up twice, and merging would hide the
// upstream chunking defect. We flag it and keep both.
func Accumulate(cat Catalog, records []Record) Catalog {
	seen := make(map[string]bool, len(cat))
	for _, r := range cat {
		seen[r.SyncID] = true
	}
	for _, r := range records {
		if seen[r.SyncID] {
			slog.Warn("duplicate sync id in catalog, keeping both records", "sync_id", r.SyncID)
		}
		seen[r.SyncID] = true
		cat = append(cat, r)
	}
	return cat
}
