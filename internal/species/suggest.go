package species

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many ids Suggest returns.
const maxSuggestions = 3

// Suggest returns up to three catalog ids close to the given one, nearest first.
// Prefix matches rank ahead of edit-distance matches.
func (c *Catalog) Suggest(id string) []string {
	needle := NormalizeID(id)
	if needle == "" {
		return []string{}
	}

	type candidate struct {
		id    string
		dist  int
		order int
	}
	cands := make([]candidate, 0, len(c.entries))

	for i, sp := range c.entries {
		if len(needle) >= 2 && strings.HasPrefix(sp.ID, needle) {
			cands = append(cands, candidate{id: sp.ID, dist: 0, order: i})
			continue
		}
		dist := levenshtein.ComputeDistance(needle, sp.ID)
		if dist > distanceLimit(len(sp.ID)) {
			continue
		}
		cands = append(cands, candidate{id: sp.ID, dist: dist, order: i})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].order < cands[j].order
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for _, cand := range cands {
		out = append(out, cand.id)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
