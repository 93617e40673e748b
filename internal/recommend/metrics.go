package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pairRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_pair_requests_total",
			Help: "Pair ranking calls by scoring strategy",
		},
		[]string{"strategy"},
	)

	scoringFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_scoring_fallbacks_total",
			Help: "Vector scoring failures downgraded to rule-based scoring",
		},
	)

	pairDiversity = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_pair_diversity",
			Help:    "Diversity of selected pairs",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_match_scores",
			Help:    "Distribution of pair match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	interactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_interactions_total",
			Help: "Recorded user interactions by action",
		},
		[]string{"action"},
	)
)

func recordPairRequest(strategy string) {
	pairRequestsTotal.WithLabelValues(strategy).Inc()
}

func recordScoringFallback() {
	scoringFallbacksTotal.Inc()
}

func recordPairDiversity(score float64) {
	pairDiversity.Observe(score)
}

func recordMatchScore(score int) {
	matchScores.Observe(float64(score))
}

func recordInteraction(action string) {
	interactionsTotal.WithLabelValues(action).Inc()
}
