package simhash

// Filter is the admitted-fingerprint set: the single gate through which
// a document's posting data may enter the index. It is grow-only for
// the lifetime of one build (Empty → Populated, per spec.md §4.7) and
// is exclusive to the indexer — never shared with the query side.
type Filter struct {
	admitted []uint16
}

// NewFilter returns an empty duplicate filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Admit returns true and records fp if no previously admitted
// fingerprint is similar to fp; returns false (and does not record
// anything) otherwise. Admitting the same fingerprint twice therefore
// returns true then false.
func (f *Filter) Admit(fp uint16) bool {
	for _, existing := range f.admitted {
		if Similar(existing, fp) {
			return false
		}
	}
	f.admitted = append(f.admitted, fp)
	return true
}

// Len reports how many fingerprints have been admitted so far.
func (f *Filter) Len() int {
	return len(f.admitted)
}
