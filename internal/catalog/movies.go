// internal/catalog/movies.go
// Now-playing movies folded into the candidate pool as pseudo-events.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MovieCategoryID is the fixed cinema category identifier movie
// records are filed under.
const MovieCategoryID = "3796"

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

type MovieClientConfig struct {
	BaseURL     string
	APIKey      string
	Region      string
	Language    string
	HTTPTimeout time.Duration
}

type MovieClient struct {
	baseURL    string
	apiKey     string
	region     string
	language   string
	httpClient *http.Client
}

func NewMovieClient(cfg MovieClientConfig) *MovieClient {
	if cfg.Region == "" {
		cfg.Region = "TR"
	}
	if cfg.Language == "" {
		cfg.Language = "tr-TR"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return &MovieClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type movieResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// NowPlaying maps the current theatrical releases into Event records.
// Movie IDs get a tmdb_ prefix so they stay globally unique next to
// catalog events. Release dates are bare YYYY-MM-DD strings.
func (m *MovieClient) NowPlaying(ctx context.Context) ([]Event, error) {
	params := url.Values{}
	params.Set("api_key", m.apiKey)
	params.Set("language", m.language)
	params.Set("region", m.region)
	params.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("movie upstream returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []movieResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(payload.Results))
	for _, movie := range payload.Results {
		overview := movie.Overview
		if overview == "" {
			overview = "Özet bulunmuyor."
		}
		posterURL := ""
		if movie.PosterPath != "" {
			posterURL = posterBaseURL + movie.PosterPath
		}

		e := Event{
			ID:   fmt.Sprintf("tmdb_%d", movie.ID),
			Name: movie.Title,
			Category: Category{
				ID:   MovieCategoryID,
				Name: "Sinema",
				Slug: "sinema",
			},
			Venue: Venue{
				Name: "Sinemalar",
				City: "İstanbul",
			},
			Start:     movie.ReleaseDate,
			Content:   fmt.Sprintf("%s (Yayın Tarihi: %s)", overview, movie.ReleaseDate),
			PosterURL: posterURL,
			TicketURL: fmt.Sprintf("https://www.themoviedb.org/movie/%d", movie.ID),
		}
		if raw, err := json.Marshal(e); err == nil {
			e.Raw = raw
		}
		events = append(events, e)
	}
	return events, nil
}
