package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-posts/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns the postgres ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	stmt := `
		SELECT user_id, handle, created_at
		FROM profiles
		WHERE user_id = @user_id
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get profile query for user_id=%s: %w", userID, err)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:profiles: user_id=%s: %w", userID, err)
	}

	return &profile, nil
}
