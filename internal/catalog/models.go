// internal/catalog/models.go
// Normalized candidate records shared by the catalog sources and the
// recommendation engine.

package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrNoStartDate = errors.New("event has no start date")

// Event is one normalized candidate. Upstream payloads are messy: IDs
// arrive as numbers or prefixed strings, districts as plain strings or
// objects, start values as bare dates or ISO timestamps. Everything is
// collapsed into this shape once, at decode time.
type Event struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Venue       Venue           `json:"venue"`
	Start       string          `json:"start,omitempty"`
	TicketPrice *float64        `json:"ticket_price,omitempty"`
	IsFree      bool            `json:"is_free"`
	Content     string          `json:"content,omitempty"`
	PosterURL   string          `json:"poster_url,omitempty"`
	TicketURL   string          `json:"ticket_url,omitempty"`

	// Raw keeps the source payload for downstream consumers. Never
	// inspected by the ranking pipeline.
	Raw json.RawMessage `json:"-"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Venue struct {
	Name     string `json:"name"`
	Locality string `json:"district,omitempty"`
	City     string `json:"city,omitempty"`
}

// StartTime parses the event's start value. Accepted shapes are a bare
// 10-character date (movie releases) and ISO 8601 with an optional
// trailing Z, which is stripped before parsing.
func (e Event) StartTime() (time.Time, error) {
	return ParseStart(e.Start)
}

var startLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStart parses a start timestamp in any shape the catalog emits.
func ParseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "Z"))
	if s == "" {
		return time.Time{}, ErrNoStartDate
	}
	var lastErr error
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// flexString tolerates both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// locality tolerates both `"Kadıköy"` and `{"id": 1, "name": "Kadıköy"}`.
type locality string

func (l *locality) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = locality(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = locality(obj.Name)
	return nil
}

type rawEvent struct {
	ID       flexString `json:"id"`
	Name     string     `json:"name"`
	Category struct {
		ID   flexString `json:"id"`
		Name string     `json:"name"`
		Slug string     `json:"slug"`
	} `json:"category"`
	Venue struct {
		Name     string   `json:"name"`
		District locality `json:"district"`
		City     locality `json:"city"`
	} `json:"venue"`
	Start       string          `json:"start"`
	TicketPrice *float64        `json:"ticket_price"`
	IsFree      bool            `json:"is_free"`
	Content     string          `json:"content"`
	PosterURL   string          `json:"poster_url"`
	TicketURL   string          `json:"ticket_url"`
}

// DecodeEvent normalizes one upstream payload into an Event, retaining
// the original bytes in Raw.
func DecodeEvent(raw json.RawMessage) (Event, error) {
	var re rawEvent
	if err := json.Unmarshal(raw, &re); err != nil {
		return Event{}, err
	}
	e := Event{
		ID:   string(re.ID),
		Name: re.Name,
		Category: Category{
			ID:   string(re.Category.ID),
			Name: re.Category.Name,
			Slug: re.Category.Slug,
		},
		Venue: Venue{
			Name:     re.Venue.Name,
			Locality: string(re.Venue.District),
			City:     string(re.Venue.City),
		},
		Start:       re.Start,
		TicketPrice: re.TicketPrice,
		IsFree:      re.IsFree,
		Content:     re.Content,
		PosterURL:   re.PosterURL,
		TicketURL:   re.TicketURL,
		Raw:         append(json.RawMessage(nil), raw...),
	}
	return e, nil
}

// DecodeEvents drops undecodable entries instead of failing the batch.
func DecodeEvents(raws []json.RawMessage) []Event {
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		e, err := DecodeEvent(raw)
		if err != nil || e.ID == "" {
			continue
		}
		events = append(events, e)
	}
	return events
}
