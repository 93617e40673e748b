// internal/recommend/diversity.go
// Pairwise dissimilarity over category, venue, date and time-of-day.

package recommend

import (
	"math"
	"strings"
	"time"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

// Factor weights. They sum to 1; the result is clamped to [0,1]
// anyway because the locality bonus can push past the venue weight.
const (
	weightCategory = 0.40
	weightVenue    = 0.25
	weightDate     = 0.20
	weightTime     = 0.15

	localityBonusShare = 0.3
)

// eventDiversity returns how different two events are, in [0,1].
// 1 means completely different, 0 identical.
func eventDiversity(e1, e2 catalog.Event) float64 {
	score := 0.0

	// Category: distinct identifiers count fully; same identifier
	// under a different display name is a sub-category split.
	if e1.Category.ID != e2.Category.ID {
		score += weightCategory
	} else if !strings.EqualFold(e1.Category.Name, e2.Category.Name) {
		score += weightCategory * 0.5
	}

	// Venue, with a bonus when the venues sit in different localities.
	if e1.Venue.Name != e2.Venue.Name {
		score += weightVenue

		d1 := strings.ToLower(e1.Venue.Locality)
		d2 := strings.ToLower(e2.Venue.Locality)
		if d1 != "" && d2 != "" && d1 != d2 {
			score += weightVenue * localityBonusShare
		}
	}

	score += dateTimeDiversity(e1, e2)

	return math.Min(score, 1.0)
}

func dateTimeDiversity(e1, e2 catalog.Event) float64 {
	if e1.Start == "" || e2.Start == "" {
		return 0
	}

	t1, err1 := e1.StartTime()
	t2, err2 := e2.StartTime()
	if err1 != nil || err2 != nil {
		// Unparsable date: neutral middle ground instead of failing.
		return (weightDate + weightTime) * 0.5
	}

	dayDiff := daysApart(t1, t2)

	score := 0.0
	switch {
	case dayDiff == 0:
		// Same day: the hour gap is what separates them.
		hourDiff := int(math.Abs(float64(t1.Hour() - t2.Hour())))
		if hourDiff >= 4 {
			score += weightTime
		} else if hourDiff >= 2 {
			score += weightTime * 0.5
		}
	case dayDiff <= 2:
		score += weightDate * 0.5
		score += weightTime
	default:
		score += weightDate
		score += weightTime
	}
	return score
}

func daysApart(t1, t2 time.Time) int {
	d1 := time.Date(t1.Year(), t1.Month(), t1.Day(), 0, 0, 0, 0, time.UTC)
	d2 := time.Date(t2.Year(), t2.Month(), t2.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(d1.Sub(d2).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
