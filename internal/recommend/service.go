// internal/recommend/service.go

package recommend

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

var ErrInvalidAction = errors.New("invalid interaction action")

var validActions = map[string]bool{
	ActionLike:    true,
	ActionDislike: true,
	ActionClick:   true,
	ActionView:    true,
}

type Service interface {
	RecommendPair(ctx context.Context, userID int64, cityID, timeFilter string) (*SelectionResult, error)
	ListEvents(ctx context.Context, userID int64, cityID, categoryFilter, scope string) ([]catalog.Event, error)
	RecordInteraction(ctx context.Context, userID int64, eventID, action string) (*Interaction, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	source      catalog.Source
	movies      *catalog.MovieClient
	engine      *Engine
	cityID      string
}

// NewService wires the engine to its collaborators. source and movies
// may be nil; the service then serves from the local catalog only.
func NewService(repo Repository, catalogRepo catalog.Repository, source catalog.Source, movies *catalog.MovieClient, engine *Engine, defaultCityID string) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		source:      source,
		movies:      movies,
		engine:      engine,
		cityID:      defaultCityID,
	}
}

func (s *service) RecommendPair(ctx context.Context, userID int64, cityID, timeFilter string) (*SelectionResult, error) {
	profile, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// An unknown user gets an empty result, not a failure.
			return &SelectionResult{Pair: []catalog.Event{}, Alternates: []catalog.Event{}}, nil
		}
		return nil, err
	}

	interactions := s.userInteractions(ctx, userID)
	candidates := s.localCandidates(ctx, s.city(cityID))
	candidates = s.appendMovies(ctx, candidates)

	result := s.engine.RankPair(ctx, candidates, *profile, interactions, timeFilter)
	return &result, nil
}

func (s *service) ListEvents(ctx context.Context, userID int64, cityID, categoryFilter, scope string) ([]catalog.Event, error) {
	city := s.city(cityID)
	parsedScope := ParseScope(scope)

	var (
		events         []catalog.Event
		sourceFiltered bool
	)

	if parsedScope == ScopeAll && s.source != nil {
		// Explore mode goes straight to the live source, narrowed by
		// resolved category identifier when the filter maps to one.
		var categoryIDs []string
		if categoryFilter != "" && ParseTimeWindow(categoryFilter) == WindowNone {
			resolver := s.interestResolver(ctx)
			if id, ok := resolver.CategoryID(categoryFilter); ok {
				categoryIDs = []string{id}
			}
		}

		live, err := s.source.Events(ctx, city, categoryIDs)
		if err != nil {
			log.Printf("recommend: live source failed, using local catalog: %v", err)
			events = s.localCandidates(ctx, city)
		} else {
			events = live
			sourceFiltered = len(categoryIDs) > 0
		}
	} else {
		events = s.localCandidates(ctx, city)
	}

	if s.needMovies(categoryFilter) {
		events = s.appendMovies(ctx, events)
	}
	if len(events) == 0 {
		return []catalog.Event{}, nil
	}

	var profile UserProfile
	if p, err := s.repo.GetUserProfile(ctx, userID); err == nil {
		profile = *p
	}
	interactions := s.userInteractions(ctx, userID)

	return s.engine.RankList(ctx, events, profile, interactions, ListOptions{
		CategoryFilter: categoryFilter,
		Scope:          parsedScope,
		SourceFiltered: sourceFiltered,
	}), nil
}

func (s *service) RecordInteraction(ctx context.Context, userID int64, eventID, action string) (*Interaction, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	if !validActions[action] {
		return nil, ErrInvalidAction
	}

	interaction := &Interaction{
		UserID:  userID,
		EventID: eventID,
		Action:  action,
	}
	if err := s.repo.CreateInteraction(ctx, interaction); err != nil {
		return nil, err
	}

	recordInteraction(action)
	return interaction, nil
}

func (s *service) city(cityID string) string {
	if cityID != "" {
		return cityID
	}
	return s.cityID
}

func (s *service) userInteractions(ctx context.Context, userID int64) []Interaction {
	interactions, err := s.repo.GetUserInteractions(ctx, userID)
	if err != nil {
		log.Printf("recommend: loading interactions for user %d failed: %v", userID, err)
		return nil
	}
	return interactions
}

func (s *service) localCandidates(ctx context.Context, cityID string) []catalog.Event {
	events, err := s.catalogRepo.UpcomingEvents(ctx, cityID, 300)
	if err != nil {
		log.Printf("recommend: local candidate fetch failed: %v", err)
		return nil
	}
	return events
}

func (s *service) appendMovies(ctx context.Context, events []catalog.Event) []catalog.Event {
	if s.movies == nil {
		return events
	}
	movies, err := s.movies.NowPlaying(ctx)
	if err != nil {
		log.Printf("recommend: movie fetch failed: %v", err)
		return events
	}
	return append(events, movies...)
}

// needMovies decides whether theatrical releases belong in the pool.
// They do unless an explicit category filter asks for something that
// is neither cinema nor a time tag.
func (s *service) needMovies(categoryFilter string) bool {
	if s.movies == nil {
		return false
	}
	if categoryFilter == "" {
		return true
	}
	cf := strings.ToLower(strings.TrimSpace(categoryFilter))
	if cf == "sinema" || cf == "film" {
		return true
	}
	return ParseTimeWindow(cf) != WindowNone
}

// interestResolver builds a resolver over the freshest category map.
// A failed or empty map still resolves the well-known domains through
// the static fallback table.
func (s *service) interestResolver(ctx context.Context) *InterestResolver {
	categoryMap, err := s.catalogRepo.CategoryMap(ctx)
	if err != nil {
		log.Printf("recommend: category map load failed, using fallback table: %v", err)
		categoryMap = nil
	}
	return NewInterestResolver(categoryMap)
}
