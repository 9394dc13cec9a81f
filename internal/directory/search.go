package directory

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"nagacare/internal/domain"
)

const (
	defaultSearchLimit = 10
	maxFuzzyDistance   = 3
)

type scored struct {
	facility domain.Facility
	score    int
}

// Search ranks facilities whose name or services contain query first, then
// facilities whose name is within a small edit distance of it.
func (d *Directory) Search(query string, limit int) []domain.Facility {
	q := normalize(query)
	if q == "" {
		return []domain.Facility{}
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	maxDist := fuzzyThreshold(q)
	hits := make([]scored, 0)
	for _, f := range d.facilities {
		name := normalize(f.Name)
		if strings.Contains(name, q) || offers(f, q) {
			hits = append(hits, scored{facility: f, score: 0})
			continue
		}
		if maxDist == 0 {
			continue
		}
		if dist := nameDistance(name, q); dist <= maxDist {
			hits = append(hits, scored{facility: f, score: dist})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].facility.Name < hits[j].facility.Name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.Facility, 0, len(hits))
	for _, h := range hits {
		out = append(out, copyFacility(h.facility))
	}
	return out
}

// fuzzyThreshold allows one edit per three runes of the query, capped at maxFuzzyDistance.
func fuzzyThreshold(q string) int {
	n := len([]rune(q)) / 3
	if n > maxFuzzyDistance {
		return maxFuzzyDistance
	}
	return n
}

// nameDistance is the smaller of the whole-string edit distance and the sum,
// over the query words, of each word's distance to its closest name word.
func nameDistance(name, q string) int {
	best := levenshtein.ComputeDistance(name, q)
	words := strings.Fields(name)
	total := 0
	for _, qw := range strings.Fields(q) {
		closest := -1
		for _, w := range words {
			if d := levenshtein.ComputeDistance(w, qw); closest < 0 || d < closest {
				closest = d
			}
		}
		if closest < 0 {
			return best
		}
		total += closest
	}
	if total < best {
		return total
	}
	return best
}
