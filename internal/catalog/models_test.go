package catalog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStart(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
		fails bool
	}{
		{name: "iso", input: "2025-06-01T20:30:00", want: time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)},
		{name: "iso with zulu", input: "2025-06-01T20:30:00Z", want: time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)},
		{name: "iso with fraction", input: "2025-06-01T20:30:00.500000", want: time.Date(2025, 6, 1, 20, 30, 0, 500000000, time.UTC)},
		{name: "space separated", input: "2025-06-01 20:30:00", want: time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)},
		{name: "bare date", input: "2025-06-01", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "padded", input: "  2025-06-01  ", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", fails: true},
		{name: "whitespace only", input: "   ", fails: true},
		{name: "garbage", input: "yakında", fails: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStart(tc.input)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStart(%q): %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("ParseStart(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	t.Run("numeric identifiers become strings", func(t *testing.T) {
		raw := json.RawMessage(`{
			"id": 12345,
			"name": "Rock Gecesi",
			"category": {"id": 3970, "name": "Konser", "slug": "konser"},
			"venue": {"name": "Arena", "district": "Kadıköy", "city": "İstanbul"},
			"start": "2025-06-01T20:30:00"
		}`)

		e, err := DecodeEvent(raw)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if e.ID != "12345" {
			t.Errorf("ID = %q, want %q", e.ID, "12345")
		}
		if e.Category.ID != "3970" {
			t.Errorf("Category.ID = %q, want %q", e.Category.ID, "3970")
		}
		if e.Venue.Locality != "Kadıköy" {
			t.Errorf("Venue.Locality = %q, want %q", e.Venue.Locality, "Kadıköy")
		}
	})

	t.Run("string identifiers pass through", func(t *testing.T) {
		raw := json.RawMessage(`{
			"id": "tmdb_550",
			"name": "Dram Filmi",
			"category": {"id": "3796", "name": "Sinema", "slug": "sinema"},
			"venue": {"name": "Sinemalar"},
			"start": "2025-06-01"
		}`)

		e, err := DecodeEvent(raw)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if e.ID != "tmdb_550" {
			t.Errorf("ID = %q, want %q", e.ID, "tmdb_550")
		}
	})

	t.Run("object districts collapse to their name", func(t *testing.T) {
		raw := json.RawMessage(`{
			"id": "1",
			"name": "Sergi",
			"category": {"id": "3972", "name": "Sanat", "slug": "sanat"},
			"venue": {"name": "Galeri", "district": {"id": 7, "name": "Beşiktaş"}, "city": {"id": 40, "name": "İstanbul"}}
		}`)

		e, err := DecodeEvent(raw)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if e.Venue.Locality != "Beşiktaş" {
			t.Errorf("Venue.Locality = %q, want %q", e.Venue.Locality, "Beşiktaş")
		}
		if e.Venue.City != "İstanbul" {
			t.Errorf("Venue.City = %q, want %q", e.Venue.City, "İstanbul")
		}
	})

	t.Run("null and missing fields stay empty", func(t *testing.T) {
		raw := json.RawMessage(`{"id": "1", "name": "Minimal", "venue": {"district": null}}`)

		e, err := DecodeEvent(raw)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if e.Venue.Locality != "" || e.Category.ID != "" || e.Start != "" {
			t.Errorf("expected empty optional fields, got %+v", e)
		}
	})

	t.Run("the original payload is retained", func(t *testing.T) {
		raw := json.RawMessage(`{"id": "1", "name": "Sergi", "extra_upstream_field": true}`)

		e, err := DecodeEvent(raw)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if string(e.Raw) != string(raw) {
			t.Errorf("Raw not retained: %s", e.Raw)
		}
	})

	t.Run("invalid json fails", func(t *testing.T) {
		if _, err := DecodeEvent(json.RawMessage(`{`)); err == nil {
			t.Fatal("expected error for invalid payload")
		}
	})
}

func TestDecodeEvents(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id": "1", "name": "İyi"}`),
		json.RawMessage(`{`),
		json.RawMessage(`{"name": "Kimliksiz"}`),
		json.RawMessage(`{"id": "2", "name": "Diğer"}`),
	}

	events := DecodeEvents(raws)
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].ID != "1" || events[1].ID != "2" {
		t.Errorf("unexpected order: %q, %q", events[0].ID, events[1].ID)
	}
}

func TestEventStartTime(t *testing.T) {
	e := Event{Start: "2025-06-01T20:30:00Z"}
	got, err := e.StartTime()
	if err != nil {
		t.Fatalf("StartTime: %v", err)
	}
	want := time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartTime = %v, want %v", got, want)
	}

	if _, err := (Event{}).StartTime(); err != ErrNoStartDate {
		t.Errorf("expected ErrNoStartDate, got %v", err)
	}
}
