// internal/catalog/sync.go
// Periodic sync of the upstream catalog into the local events table.
// Ranking reads from the table; this job owns the fetching.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

type SyncService struct {
	repo        Repository
	movies      *MovieClient
	baseURL     string
	token       string
	httpClient  *http.Client
	pageSize    int
	maxEvents   int
	politeDelay time.Duration
}

func NewSyncService(repo Repository, movies *MovieClient, baseURL, token string) *SyncService {
	return &SyncService{
		repo:        repo,
		movies:      movies,
		baseURL:     baseURL,
		token:       token,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		pageSize:    100,
		maxEvents:   3000,
		politeDelay: 200 * time.Millisecond,
	}
}

// SyncCity pages through the upstream catalog for one city and upserts
// every record. Movie records are synced first when a movie client is
// configured; a movie failure never aborts the catalog sync.
func (s *SyncService) SyncCity(ctx context.Context, cityID string) (int, error) {
	total := 0

	if s.movies != nil {
		movies, err := s.movies.NowPlaying(ctx)
		if err != nil {
			log.Printf("catalog: movie sync skipped: %v", err)
		} else {
			// Persisted movie records are stamped as available now;
			// a weeks-old release date would age them out of the
			// upcoming-events query while the film is still showing.
			today := time.Now().Format("2006-01-02")
			for _, movie := range movies {
				movie.Start = today
				if err := s.repo.UpsertEvent(ctx, movie); err != nil {
					log.Printf("catalog: upsert movie %s: %v", movie.ID, err)
					continue
				}
				total++
			}
		}
	}

	skip := 0
	for total < s.maxEvents {
		items, err := s.fetchPage(ctx, cityID, s.pageSize, skip)
		if err != nil {
			return total, fmt.Errorf("sync city %s at offset %d: %w", cityID, skip, err)
		}
		if len(items) == 0 {
			break
		}

		for _, e := range DecodeEvents(items) {
			if err := s.repo.UpsertEvent(ctx, e); err != nil {
				log.Printf("catalog: upsert event %s: %v", e.ID, err)
				continue
			}
			total++
		}
		skip += len(items)

		if len(items) < s.pageSize {
			break
		}

		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(s.politeDelay):
		}
	}

	log.Printf("catalog: sync complete for city %s, %d events", cityID, total)
	return total, nil
}

// Run syncs on a fixed interval until the context is cancelled.
func (s *SyncService) Run(ctx context.Context, cityID string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.SyncCity(ctx, cityID); err != nil {
			log.Printf("catalog: sync failed: %v", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (s *SyncService) fetchPage(ctx context.Context, cityID string, take, skip int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("take", fmt.Sprintf("%d", take))
	params.Set("skip", fmt.Sprintf("%d", skip))
	params.Set("city_ids", cityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Etkinlik-Token", s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}
