// internal/recommend/scorer.go
// Relevance scoring strategies. The vector scorer is preferred; any
// failure there downgrades silently to the rule scorer, so a caller
// with candidates always gets a ranked list.

package recommend

import (
	"sort"
	"strings"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

// Scorer ranks candidates by relevance to a user. Implementations
// agree on scale (0-100, higher is better) and descending sort order,
// so strategy choice is invisible to callers.
type Scorer interface {
	Score(candidates []catalog.Event, sig signals) ([]ScoredCandidate, error)
}

// Rule scorer point values.
const (
	pointsInterestMatch = 30
	pointsSynonymMatch  = 25
	pointsLikedCategory = 20
	pointsLikedVenue    = 15
)

// ruleScorer is the keyword/category fallback strategy. It never
// fails.
type ruleScorer struct{}

func NewRuleScorer() Scorer {
	return ruleScorer{}
}

func (ruleScorer) Score(candidates []catalog.Event, sig signals) ([]ScoredCandidate, error) {
	likedCategories := make(map[string]bool, len(sig.LikedCategories))
	for _, id := range sig.LikedCategories {
		likedCategories[id] = true
	}
	likedVenues := make(map[string]bool, len(sig.LikedVenues))
	for _, v := range sig.LikedVenues {
		likedVenues[v] = true
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, e := range candidates {
		name := strings.ToLower(e.Name)
		catName := strings.ToLower(e.Category.Name)

		score := 0.0
		for _, interest := range sig.Interests {
			ival := strings.ToLower(interest)
			if ival == "" {
				continue
			}
			if strings.Contains(name, ival) || strings.Contains(catName, ival) {
				score += pointsInterestMatch
				continue
			}
			// Direct match failed; a synonym hit earns slightly
			// less, once per interest.
			for _, syn := range synonymsFor(ival) {
				if strings.Contains(name, syn) || strings.Contains(catName, syn) {
					score += pointsSynonymMatch
					break
				}
			}
		}

		if e.Category.ID != "" && likedCategories[e.Category.ID] {
			score += pointsLikedCategory
		}
		if e.Venue.Name != "" && likedVenues[e.Venue.Name] {
			score += pointsLikedVenue
		}

		scored = append(scored, ScoredCandidate{Event: e, Score: score})
	}

	sortByScore(scored)
	return scored, nil
}

// sortByScore orders descending by score, keeping input order for
// ties. Downstream selection depends on this order being stable.
func sortByScore(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
