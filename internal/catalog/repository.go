package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Events
	UpsertEvent(ctx context.Context, event Event) error
	UpcomingEvents(ctx context.Context, cityID string, limit int) ([]Event, error)

	// Categories
	UpsertCategory(ctx context.Context, cat Category) error
	CategoryMap(ctx context.Context) (map[string]string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertEvent(ctx context.Context, event Event) error {
	raw := event.Raw
	if len(raw) == 0 {
		encoded, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", event.ID, err)
		}
		raw = encoded
	}

	query := `
        INSERT INTO events (id, name, category_id, venue_name, city_id, start_date, ticket_price, raw_data)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            category_id = EXCLUDED.category_id,
            venue_name = EXCLUDED.venue_name,
            city_id = EXCLUDED.city_id,
            start_date = EXCLUDED.start_date,
            ticket_price = EXCLUDED.ticket_price,
            raw_data = EXCLUDED.raw_data
    `

	_, err := r.db.ExecContext(
		ctx, query,
		event.ID, event.Name, event.Category.ID, event.Venue.Name,
		event.Venue.City, event.Start, event.TicketPrice, []byte(raw),
	)
	return err
}

// UpcomingEvents returns candidates for a city that have not started
// yet. Records belonging to no city (movies, online events) are always
// included. Entries whose stored payload no longer decodes are skipped.
func (r *postgresRepository) UpcomingEvents(ctx context.Context, cityID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 300
	}

	query := `
        SELECT raw_data FROM events
        WHERE (city_id = $1 OR city_id IS NULL OR city_id = '')
        AND start_date >= CURRENT_DATE::text
        ORDER BY start_date
        LIMIT $2
    `

	var raws [][]byte
	if err := r.db.SelectContext(ctx, &raws, query, cityID, limit); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		e, err := DecodeEvent(raw)
		if err != nil || e.ID == "" {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *postgresRepository) UpsertCategory(ctx context.Context, cat Category) error {
	query := `
        INSERT INTO categories (id, slug, name)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET slug = EXCLUDED.slug, name = EXCLUDED.name
    `
	_, err := r.db.ExecContext(ctx, query, cat.ID, cat.Slug, cat.Name)
	return err
}

// CategoryMap returns the slug -> identifier mapping the interest
// resolver consumes. An empty table yields an empty map, not an error;
// the resolver layers its own fallback on top.
func (r *postgresRepository) CategoryMap(ctx context.Context) (map[string]string, error) {
	type row struct {
		ID   string `db:"id"`
		Slug string `db:"slug"`
	}

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, slug FROM categories`); err != nil {
		return nil, err
	}

	m := make(map[string]string, len(rows))
	for _, cr := range rows {
		if cr.Slug == "" {
			continue
		}
		m[cr.Slug] = cr.ID
	}
	return m, nil
}
