package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/go-posts/internal/database"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/sqlerr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// newTestMongo connects to POSTS_TEST_MONGO_URI and hands out a throwaway
// database, skipping the test when the URI is unset.
func newTestMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("POSTS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("POSTS_TEST_MONGO_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), database.DatabasePingTimeout*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("ping: %v", err)
	}

	db := client.Database("posts_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		ctx := context.Background()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop %s: %v", db.Name(), err)
		}
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestPostRepository_Mongo(t *testing.T) {
	db := newTestMongo(t)

	// The whole database is dropped afterwards.
	testPostRepository(t, NewMongoPostRepository(db), func(string) {})
}

func TestPostRepository_MongoDuplicateID(t *testing.T) {
	db := newTestMongo(t)
	repo := NewMongoPostRepository(db)
	ctx := context.Background()

	post := &model.Post{ID: uuid.NewString(), User: "user_a", Text: "first", Date: time.Now().UTC()}
	if _, err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.CreatePost(ctx, &model.Post{ID: post.ID, User: "user_a", Text: "again", Date: time.Now().UTC()})
	if err == nil {
		t.Fatalf("expected a duplicate key error")
	}
	if sqlerr.ErrCode(err) != sqlerr.UniqueViolation {
		t.Fatalf("expected a unique violation, got %v", err)
	}
}

func TestProfileRepository_Mongo(t *testing.T) {
	db := newTestMongo(t)
	ctx := context.Background()

	if _, err := db.Collection(database.ProfilesCollection).InsertOne(ctx, model.Profile{
		User:      "user_a",
		Handle:    "ada",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	repo := NewMongoProfileRepository(db)

	profile, err := repo.GetProfileByUserID(ctx, "user_a")
	if err != nil || profile.Handle != "ada" {
		t.Fatalf("unexpected profile %+v (%v)", profile, err)
	}

	if _, err := repo.GetProfileByUserID(ctx, "user_nobody"); !sqlerr.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown user, got %v", err)
	}
}
