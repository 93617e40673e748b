// internal/recommend/pair.go
// Diverse pair selection via Maximal Marginal Relevance. Greedy, not
// optimal: one random-ish first pick, one scan for the second.

package recommend

import (
	"math/rand"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

const (
	mmrLambda     = 0.65
	mmrPoolSize   = 100
	firstPickTopN = 7
	maxAlternates = 12
)

type pairSelection struct {
	Pair       []catalog.Event
	Alternates []catalog.Event
	MMRScore   float64
}

// selectDiversePair picks two events from a relevance-sorted list. The
// first pick is sampled uniformly among the top entries so repeated
// calls don't always lead with the same event; the second maximizes
// λ·relevance + (1−λ)·diversity against the first. Ties go to the
// earlier (higher-relevance) candidate.
func selectDiversePair(scored []ScoredCandidate, rng *rand.Rand) pairSelection {
	if len(scored) == 0 {
		return pairSelection{}
	}

	pool := scored
	if len(pool) > mmrPoolSize {
		pool = pool[:mmrPoolSize]
	}

	topN := firstPickTopN
	if len(pool) < topN {
		topN = len(pool)
	}
	firstIdx := rng.Intn(topN)

	sel := pairSelection{
		Pair: []catalog.Event{pool[firstIdx].Event},
	}

	bestIdx := -1
	bestScore := -999.0
	for idx, candidate := range pool {
		if idx == firstIdx {
			continue
		}

		relevance := 0.0
		if candidate.Score > 0 {
			relevance = candidate.Score / 100
		}
		diversity := eventDiversity(candidate.Event, pool[firstIdx].Event)

		mmr := mmrLambda*relevance + (1-mmrLambda)*diversity
		if mmr > bestScore {
			bestScore = mmr
			bestIdx = idx
		}
	}

	if bestIdx != -1 {
		sel.Pair = append(sel.Pair, pool[bestIdx].Event)
		sel.MMRScore = bestScore
	}

	for idx, candidate := range pool {
		if idx == firstIdx || idx == bestIdx {
			continue
		}
		sel.Alternates = append(sel.Alternates, candidate.Event)
		if len(sel.Alternates) >= maxAlternates {
			break
		}
	}

	return sel
}

// matchScore converts the winning MMR value to the 0-99 display scale.
func matchScore(mmr float64) int {
	score := int(mmr * 100)
	if score > 99 {
		score = 99
	}
	if score < 0 {
		score = 0
	}
	return score
}
