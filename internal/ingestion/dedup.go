package ingestion

// Deduplicator holds the identity keys already known for one account during a
// single file pass. It is seeded from storage and grows as rows are admitted.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator(existing []string) *Deduplicator {
	seen := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		seen[k] = struct{}{}
	}
	return &Deduplicator{seen: seen}
}

// Admit reports whether key is new and records it. A second Admit of the same key returns false.
func (d *Deduplicator) Admit(key string) bool {
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Len is the number of keys known so far.
func (d *Deduplicator) Len() int { return len(d.seen) }
