// internal/outfit/repair.go
package outfit

// RepairReport summarizes what Repair changed.
type RepairReport struct {
	Duplicates int `json:"duplicates"`
	Replaced   int `json:"replaced"`
	Unresolved int `json:"unresolved"`

	// UnresolvedOutfits holds the batch positions that still carry a
	// duplicate id after repair.
	UnresolvedOutfits []int `json:"unresolved_outfits,omitempty"`
}

// IsUnresolved reports whether the outfit at index kept a duplicate id.
func (r RepairReport) IsUnresolved(index int) bool {
	for _, i := range r.UnresolvedOutfits {
		if i == index {
			return true
		}
	}
	return false
}

// Repair guarantees that, per category, no product id is used by more than
// one proposal, provided the pool holds at least as many distinct ids as
// there are proposals. Proposals are visited in batch order, so the first
// use of an id keeps it and later uses are swapped for the best ranked pool
// entry not yet taken. When the pool is exhausted the duplicate id is left in
// place and the outfit is listed in RepairReport.UnresolvedOutfits so that
// enrichment builds a fallback for it.
//
// The input slice is not modified; the returned slice has the same length
// and order.
func Repair(proposals []Proposal, pool CandidatePool) ([]Proposal, RepairReport) {
	out := make([]Proposal, len(proposals))
	copy(out, proposals)

	var report RepairReport
	report.Duplicates = countDuplicates(out)
	if report.Duplicates == 0 {
		return out, report
	}

	seen := newSeenSets()
	for i := range out {
		unresolved := false
		for _, c := range Categories {
			slot := out[i].slot(c)
			if seen[c][*slot] {
				if next, ok := firstUnused(pool.For(c), seen[c]); ok {
					*slot = next
					report.Replaced++
				} else {
					report.Unresolved++
					unresolved = true
				}
			}
			seen[c][*slot] = true
		}
		if unresolved {
			report.UnresolvedOutfits = append(report.UnresolvedOutfits, i)
		}
	}
	return out, report
}

func countDuplicates(proposals []Proposal) int {
	seen := newSeenSets()
	dups := 0
	for i := range proposals {
		for _, c := range Categories {
			id := proposals[i].IDFor(c)
			if seen[c][id] {
				dups++
				continue
			}
			seen[c][id] = true
		}
	}
	return dups
}

func firstUnused(candidates []Product, seen map[ProductID]bool) (ProductID, bool) {
	for _, p := range candidates {
		if !seen[p.ID] {
			return p.ID, true
		}
	}
	return "", false
}

func newSeenSets() map[Category]map[ProductID]bool {
	sets := make(map[Category]map[ProductID]bool, len(Categories))
	for _, c := range Categories {
		sets[c] = make(map[ProductID]bool)
	}
	return sets
}
