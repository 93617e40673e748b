// internal/recommend/interests.go
// Maps free-text user interests to category identifiers and keyword
// synonym sets.

package recommend

import (
	"sort"
	"strings"
)

// synonyms expands an interest into the keywords that may appear in
// event names and category labels instead of the interest itself.
var synonyms = map[string][]string{
	"konser":   {"konser", "müzik", "muzik", "rock", "pop", "caz", "rap", "elektronik", "canlı"},
	"tiyatro":  {"tiyatro", "sahne", "gösteri", "oyun", "musical", "kabare"},
	"sinema":   {"sinema", "film", "gösterim"},
	"festival": {"festival", "senlik", "şenlik"},
	"spor":     {"spor", "mac", "maç", "futbol", "basketbol", "voleybol", "koşu"},
	"sanat":    {"sanat", "sergi", "resim", "heykel", "muze", "müze", "fotoğraf"},
	"atolye":   {"atolye", "atölye", "workshop", "kurs", "egitim", "eğitim", "seminer"},
}

// fallbackCategoryIDs keeps filtering usable when the backing category
// table is empty or stale. These are the upstream catalog's standard
// identifiers for the core domains.
var fallbackCategoryIDs = map[string]string{
	"tiyatro":  "3968",
	"konser":   "3970",
	"festival": "3971",
	"egitim":   "3974",
	"spor":     "3975",
	"sanat":    "3972",
	"sinema":   "3796",
}

func synonymsFor(interest string) []string {
	return synonyms[strings.ToLower(interest)]
}

// InterestResolver resolves interests against a slug -> category ID
// map. The dynamic map overlays the static fallback table, so a
// well-known slug always resolves even with an empty backing store.
type InterestResolver struct {
	categories map[string]string
}

func NewInterestResolver(categoryMap map[string]string) *InterestResolver {
	merged := make(map[string]string, len(fallbackCategoryIDs)+len(categoryMap))
	for slug, id := range fallbackCategoryIDs {
		merged[slug] = id
	}
	for slug, id := range categoryMap {
		if slug == "" || id == "" {
			continue
		}
		merged[slug] = id
	}
	return &InterestResolver{categories: merged}
}

// CategoryID resolves a single slug, exact match only.
func (r *InterestResolver) CategoryID(slug string) (string, bool) {
	id, ok := r.categories[strings.ToLower(slug)]
	return id, ok
}

// CategoryIDs resolves a user's interest list to the union of matching
// category identifiers. Resolution per interest: exact slug match,
// then synonym-substring match against every known slug, then the raw
// interest as a substring of any slug. Unresolvable interests simply
// contribute nothing.
func (r *InterestResolver) CategoryIDs(interests []string) []string {
	ids := make(map[string]bool)

	for _, interest := range interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest == "" {
			continue
		}

		if id, ok := r.categories[interest]; ok {
			ids[id] = true
			continue
		}

		found := false
		for _, syn := range synonyms[interest] {
			for slug, id := range r.categories {
				if strings.Contains(slug, syn) {
					ids[id] = true
					found = true
				}
			}
		}
		if found {
			continue
		}

		for slug, id := range r.categories {
			if strings.Contains(slug, interest) {
				ids[id] = true
			}
		}
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
