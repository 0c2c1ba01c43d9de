package depgraph

import "sort"

// findOrphans lists files with zero outgoing and zero incoming edges.
func (a *Analyzer) findOrphans() []string {
	orphans := []string{}
	for _, relPath := range a.sortedFiles() {
		if len(a.deps[relPath]) == 0 && len(a.reverse[relPath]) == 0 {
			orphans = append(orphans, relPath)
		}
	}
	return orphans
}

// findHighlyCoupled lists files whose combined in/out degree meets the
// threshold, sorted descending by total degree, ties broken by path.
func (a *Analyzer) findHighlyCoupled() []CouplingRecord {
	records := []CouplingRecord{}
	for _, relPath := range a.sortedFiles() {
		out := len(a.deps[relPath])
		in := len(a.reverse[relPath])
		if out+in >= a.threshold {
			records = append(records, CouplingRecord{
				File:         relPath,
				Dependencies: out,
				Dependents:   in,
				Total:        out + in,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Total != records[j].Total {
			return records[i].Total > records[j].Total
		}
		return records[i].File < records[j].File
	})
	return records
}
