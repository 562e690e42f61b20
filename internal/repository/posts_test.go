package repository

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/go-posts/internal/database"
	"github.com/deppfellow/go-posts/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// newTestPool migrates and connects to POSTS_TEST_DATABASE_URL, skipping
// the test when it is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("POSTS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("POSTS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()
	if err := database.MigrateURL(ctx, &logger, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostRepository_Postgres(t *testing.T) {
	pool := newTestPool(t)

	var ids []string
	t.Cleanup(func() {
		if _, err := pool.Exec(context.Background(), `DELETE FROM posts WHERE id = ANY($1)`, ids); err != nil {
			t.Logf("cleanup posts: %v", err)
		}
	})

	testPostRepository(t, NewPostRepository(pool), func(id string) {
		ids = append(ids, id)
	})
}

func TestProfileRepository_Postgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	userID := "user_profile_test"
	if _, err := pool.Exec(ctx,
		`INSERT INTO profiles (user_id, handle) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, "profile-test"); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM profiles WHERE user_id = $1`, userID)
	})

	repo := NewProfileRepository(pool)

	profile, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil || profile.Handle != "profile-test" {
		t.Fatalf("unexpected profile %+v (%v)", profile, err)
	}

	if _, err := repo.GetProfileByUserID(ctx, "user_nobody"); !sqlerr.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown user, got %v", err)
	}
}
