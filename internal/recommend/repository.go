package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)
	GetUserInteractions(ctx context.Context, userID int64) ([]Interaction, error)
	CreateInteraction(ctx context.Context, interaction *Interaction) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var row struct {
		ID          int64  `db:"id"`
		DisplayName string `db:"display_name"`
		Interests   []byte `db:"interests"`
	}

	query := `SELECT id, display_name, interests FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &UserProfile{ID: row.ID, DisplayName: row.DisplayName}
	// Interests are stored as a JSON array; a malformed value just
	// means no stated interests.
	if len(row.Interests) > 0 {
		_ = json.Unmarshal(row.Interests, &profile.Interests)
	}
	return profile, nil
}

// GetUserInteractions returns the full history, each row joined with
// the event's category and venue so the scorers can use them without
// another lookup. Interactions on deleted events survive with empty
// join fields.
func (r *postgresRepository) GetUserInteractions(ctx context.Context, userID int64) ([]Interaction, error) {
	query := `
        SELECT i.id, i.user_id, i.event_id, i.action, i.created_at,
               COALESCE(e.category_id, '') AS category_id,
               COALESCE(e.venue_name, '') AS venue_name
        FROM interactions i
        LEFT JOIN events e ON i.event_id = e.id
        WHERE i.user_id = $1
        ORDER BY i.created_at
    `

	var interactions []Interaction
	if err := r.db.SelectContext(ctx, &interactions, query, userID); err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *postgresRepository) CreateInteraction(ctx context.Context, interaction *Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}

	query := `
        INSERT INTO interactions (id, user_id, event_id, action)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	return r.db.QueryRowxContext(
		ctx, query,
		interaction.ID, interaction.UserID, interaction.EventID, interaction.Action,
	).Scan(&interaction.CreatedAt)
}
