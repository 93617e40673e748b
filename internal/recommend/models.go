package recommend

import (
	"time"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

// Interaction actions. Likes and clicks are the positive signal for
// scoring; dislikes permanently exclude an event from a user's pools.
const (
	ActionLike    = "like"
	ActionDislike = "dislike"
	ActionClick   = "click"
	ActionView    = "view"
)

type UserProfile struct {
	ID          int64    `json:"id" db:"id"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Interests   []string `json:"interests"`
}

type Interaction struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Action    string    `json:"action" db:"action"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from the events table; empty when the event is gone.
	CategoryID string `json:"category_id,omitempty" db:"category_id"`
	VenueName  string `json:"venue_name,omitempty" db:"venue_name"`
}

// ScoredCandidate pairs a candidate with its relevance score, nominally
// on a 0-100 scale. Built fresh on every ranking call.
type ScoredCandidate struct {
	Event catalog.Event `json:"event"`
	Score float64       `json:"score"`
}

type DiversityStats struct {
	DiversityScore float64 `json:"diversity_score"`
	Category1      string  `json:"category_1"`
	Category2      string  `json:"category_2"`
	Venue1         string  `json:"venue_1"`
	Venue2         string  `json:"venue_2"`
	SameCategory   bool    `json:"same_category"`
}

// SelectionResult is the outcome of one pair-ranking call. Pair holds
// 0, 1 or 2 events; two is the success case.
type SelectionResult struct {
	Pair       []catalog.Event `json:"pair"`
	Alternates []catalog.Event `json:"alternates"`
	Theme      string          `json:"pair_theme,omitempty"`
	MatchScore int             `json:"match_score"`
	Reason     string          `json:"reason"`
	Strategy   string          `json:"strategy,omitempty"`
	Diversity  *DiversityStats `json:"diversity,omitempty"`
}

// signals is everything the scorers need to know about a user,
// extracted once per call from the profile and interaction history.
type signals struct {
	Interests       []string
	LikedCategories []string
	LikedVenues     []string
	LikedEventIDs   map[string]bool
	PositiveIDs     map[string]bool
	DislikedIDs     map[string]bool
}

func extractSignals(profile UserProfile, interactions []Interaction) signals {
	sig := signals{
		Interests:     profile.Interests,
		LikedEventIDs: make(map[string]bool),
		PositiveIDs:   make(map[string]bool),
		DislikedIDs:   make(map[string]bool),
	}

	seenCat := make(map[string]bool)
	seenVenue := make(map[string]bool)

	for _, in := range interactions {
		switch in.Action {
		case ActionDislike:
			sig.DislikedIDs[in.EventID] = true
		case ActionLike, ActionClick:
			sig.PositiveIDs[in.EventID] = true
			if in.Action == ActionLike {
				sig.LikedEventIDs[in.EventID] = true
			}
			if in.CategoryID != "" && !seenCat[in.CategoryID] {
				seenCat[in.CategoryID] = true
				sig.LikedCategories = append(sig.LikedCategories, in.CategoryID)
			}
			if in.VenueName != "" && !seenVenue[in.VenueName] {
				seenVenue[in.VenueName] = true
				sig.LikedVenues = append(sig.LikedVenues, in.VenueName)
			}
		}
	}
	return sig
}

func (s signals) hasPositiveSignal() bool {
	return len(s.PositiveIDs) > 0
}
