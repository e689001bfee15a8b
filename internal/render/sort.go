// Package render turns publication lists into the publications section markup.
package render

import (
	"sort"

	"github.com/matsen/labsite/internal/publication"
)

// YearGroup holds the publications sharing one year label, in display order.
type YearGroup struct {
	Label        string
	Publications []publication.Publication
}

// Sort returns a copy of pubs ordered by descending numeric year.
// Entries with equal sort years keep their input order.
func Sort(pubs []publication.Publication) []publication.Publication {
	out := make([]publication.Publication, len(pubs))
	copy(out, pubs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortYear() > out[j].SortYear()
	})
	return out
}

// Group sorts pubs and splits them into runs sharing a sort year, so the
// displayed order always equals the sorted order. A group takes the label of
// its first entry; each entry keeps its own year text.
func Group(pubs []publication.Publication) []YearGroup {
	var groups []YearGroup
	for _, p := range Sort(pubs) {
		n := len(groups)
		if n == 0 || groups[n-1].Publications[0].SortYear() != p.SortYear() {
			groups = append(groups, YearGroup{Label: p.Year})
			n++
		}
		groups[n-1].Publications = append(groups[n-1].Publications, p)
	}
	return groups
}

// Flatten returns the publications of groups in display order.
func Flatten(groups []YearGroup) []publication.Publication {
	var out []publication.Publication
	for _, g := range groups {
		out = append(out, g.Publications...)
	}
	return out
}
