// internal/recommend/engine.go
// The ranking pipeline: filter -> score -> diverse pair selection ->
// synergy labeling. Every call is a pure function of its inputs; the
// engine holds no state beyond its random source and clock.

package recommend

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

// Scoring strategies, surfaced on the SelectionResult.
const (
	StrategyVector    = "vector"
	StrategyRules     = "rules"
	StrategyFavorites = "favorites"
)

const (
	favoritesMinLikes  = 10
	favoritesMinInPool = 2
	favoritesScore     = 100

	listResultCap    = 50
	personalMinScore = 5
)

type Scope string

const (
	ScopePersonal Scope = "personal"
	ScopeAll      Scope = "all"
)

func ParseScope(s string) Scope {
	if strings.EqualFold(strings.TrimSpace(s), string(ScopeAll)) {
		return ScopeAll
	}
	return ScopePersonal
}

var strategyReasons = map[string]string{
	StrategyVector:    "> 🧬 Durum: Yapay Zeka (ML)\n> 🧠 Analiz: TF-IDF & Cosine Similarity kullanıldı.\n> 🎯 Seçim: Zevklerine en yakın etkinlikler vektörlendi.",
	StrategyRules:     "> 📊 Durum: Kural Tabanlı\n> 🧠 Analiz: İlgi alanı ve geçmiş eşleşmeleri puanlandı.\n> 🎯 Seçim: En yüksek puanlı etkinlikler seçildi.",
	StrategyFavorites: "> 🎲 Mod: Favori Karıştırıcı\n> ❤️ Durum: Beğendiğin 10+ etkinlik var.\n> 🎯 Seçim: Beğendiklerin arasından rastgele seçildi.",
}

type Engine struct {
	vector    Scorer
	rules     Scorer
	explainer Explainer
	rng       *rand.Rand
	now       func() time.Time
}

type Option func(*Engine)

// WithExplainer attaches an optional prose generator for pair reasons.
func WithExplainer(x Explainer) Option {
	return func(e *Engine) { e.explainer = x }
}

// WithRandSource replaces the random source behind the first-pick
// sampling. Tests seed this for reproducible selection.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.rng = rand.New(src) }
}

// WithClock replaces the "today" reference used by date filtering.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		vector: NewVectorScorer(),
		rules:  NewRuleScorer(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RankPair selects a well-matched, diverse pair from the candidate
// pool. Zero usable candidates yield an empty result, never an error.
func (e *Engine) RankPair(ctx context.Context, candidates []catalog.Event, profile UserProfile, interactions []Interaction, timeFilter string) SelectionResult {
	sig := extractSignals(profile, interactions)
	today := e.now()

	pool := filterCandidates(candidates, sig.DislikedIDs, today)

	if window := ParseTimeWindow(timeFilter); window != WindowNone {
		windowed := applyWindow(pool, window, today)
		// A window that leaves fewer than two candidates would make
		// the pair impossible; prefer an unwindowed pair over none.
		if len(windowed) >= 2 {
			pool = windowed
		}
	}

	if len(pool) == 0 {
		return SelectionResult{Pair: []catalog.Event{}, Alternates: []catalog.Event{}}
	}

	scored, strategy := e.scoreWithFallback(pool, sig)
	recordPairRequest(strategy)

	sel := selectDiversePair(scored, e.rng)

	result := SelectionResult{
		Pair:       sel.Pair,
		Alternates: sel.Alternates,
		Strategy:   strategy,
		Reason:     strategyReasons[strategy],
	}
	if result.Alternates == nil {
		result.Alternates = []catalog.Event{}
	}

	if len(sel.Pair) == 2 {
		_, theme := calculateSynergy(sel.Pair[0], sel.Pair[1])
		result.Theme = theme
		result.MatchScore = matchScore(sel.MMRScore)

		div := eventDiversity(sel.Pair[0], sel.Pair[1])
		result.Diversity = &DiversityStats{
			DiversityScore: div,
			Category1:      sel.Pair[0].Category.Name,
			Category2:      sel.Pair[1].Category.Name,
			Venue1:         sel.Pair[0].Venue.Name,
			Venue2:         sel.Pair[1].Venue.Name,
			SameCategory:   sel.Pair[0].Category.ID == sel.Pair[1].Category.ID,
		}
		recordPairDiversity(div)
		recordMatchScore(result.MatchScore)

		comment := explainSafely(ctx, e.explainer, profile, sel.Pair)
		if comment == "" {
			comment = templateReason(profile, sel.Pair)
		}
		result.Reason = comment + "\n\n" + strategyReasons[strategy]
	}

	return result
}

// ListOptions narrow a RankList call. SourceFiltered marks that the
// candidate source already applied the category filter by identifier,
// so the strict text filter would only fight naming mismatches.
type ListOptions struct {
	CategoryFilter string
	Scope          Scope
	SourceFiltered bool
}

// RankList runs the filter and score stages without pairing and
// returns the top candidates for a grid view, capped at 50.
func (e *Engine) RankList(ctx context.Context, candidates []catalog.Event, profile UserProfile, interactions []Interaction, opts ListOptions) []catalog.Event {
	sig := extractSignals(profile, interactions)
	today := e.now()

	pool := filterCandidates(candidates, sig.DislikedIDs, today)
	if len(pool) == 0 {
		return []catalog.Event{}
	}

	scored, _ := e.score(pool, sig)

	window := ParseTimeWindow(opts.CategoryFilter)
	target := strings.ToLower(strings.TrimSpace(opts.CategoryFilter))

	results := make([]catalog.Event, 0, listResultCap)
	for _, sc := range scored {
		if len(results) >= listResultCap {
			break
		}
		evt := sc.Event

		// Time tags act as date filters and bypass category checks.
		if window != WindowNone {
			start, err := evt.StartTime()
			if err != nil || !inWindow(start, window, today) {
				continue
			}
			results = append(results, evt)
			continue
		}

		if target != "" && !opts.SourceFiltered && !matchesCategoryFilter(evt, target) {
			continue
		}

		if opts.Scope != ScopeAll && target == "" {
			if len(sig.Interests) > 0 && !matchesAnyInterest(evt, sig.Interests) {
				continue
			}
			if sc.Score < personalMinScore {
				continue
			}
		}

		results = append(results, evt)
	}
	return results
}

// scoreWithFallback applies the favorites fast path before the
// regular strategy selection: a user with ten or more likes, at least
// two of which are in the pool, gets a pure-favorites remix.
func (e *Engine) scoreWithFallback(pool []catalog.Event, sig signals) ([]ScoredCandidate, string) {
	if len(sig.LikedEventIDs) >= favoritesMinLikes {
		favorites := make([]ScoredCandidate, 0, len(pool))
		for _, evt := range pool {
			if sig.LikedEventIDs[evt.ID] {
				favorites = append(favorites, ScoredCandidate{Event: evt, Score: favoritesScore})
			}
		}
		if len(favorites) >= favoritesMinInPool {
			return favorites, StrategyFavorites
		}
	}
	return e.score(pool, sig)
}

// score tries the vector strategy when there is positive signal to
// build a profile from, and downgrades to rules on any failure. This
// is the only recovery path in the pipeline.
func (e *Engine) score(pool []catalog.Event, sig signals) ([]ScoredCandidate, string) {
	if sig.hasPositiveSignal() {
		scored, err := e.vector.Score(pool, sig)
		if err == nil {
			return scored, StrategyVector
		}
		recordScoringFallback()
		log.Printf("recommend: vector scoring failed, using rules: %v", err)
	}

	scored, _ := e.rules.Score(pool, sig)
	return scored, StrategyRules
}

func matchesCategoryFilter(evt catalog.Event, target string) bool {
	name := strings.ToLower(evt.Name)
	catName := strings.ToLower(evt.Category.Name)
	catSlug := strings.ToLower(evt.Category.Slug)

	if strings.Contains(catSlug, target) || strings.Contains(catName, target) || strings.Contains(name, target) {
		return true
	}
	for _, syn := range synonymsFor(target) {
		if strings.Contains(catSlug, syn) || strings.Contains(catName, syn) || strings.Contains(name, syn) {
			return true
		}
	}
	return false
}

func matchesAnyInterest(evt catalog.Event, interests []string) bool {
	name := strings.ToLower(evt.Name)
	catName := strings.ToLower(evt.Category.Name)
	catSlug := strings.ToLower(evt.Category.Slug)

	for _, interest := range interests {
		ival := strings.ToLower(interest)
		if ival == "" {
			continue
		}
		if strings.Contains(name, ival) || strings.Contains(catName, ival) || strings.Contains(catSlug, ival) {
			return true
		}
		for _, syn := range synonymsFor(ival) {
			if strings.Contains(name, syn) || strings.Contains(catName, syn) || strings.Contains(catSlug, syn) {
				return true
			}
		}
	}
	return false
}
