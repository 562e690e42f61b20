package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-posts/internal/database"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/sqlerr"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository returns the mongo PostRepository.
func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{collection: db.Collection(database.PostsCollection)}
}

func (r *mongoPostRepository) ListPosts(ctx context.Context) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode documents from table:posts: %w", err)
	}

	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (r *mongoPostRepository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&post)
	if err != nil {
		return nil, fmt.Errorf("failed to find document in table:posts: post_id=%s: %w", id, err)
	}

	post.Normalize()
	return &post, nil
}

func (r *mongoPostRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.Normalize()

	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to insert post for user_id=%s: %w", post.User,
			sqlerr.ConvertMongoError(err, database.PostsCollection))
	}
	return post, nil
}

func (r *mongoPostRepository) SavePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.Normalize()

	result, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: post.ID}}, post)
	if err != nil {
		return nil, fmt.Errorf("failed to save post_id=%s: %w", post.ID,
			sqlerr.ConvertMongoError(err, database.PostsCollection))
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("table:posts: post_id=%s: %w", post.ID, mongo.ErrNoDocuments)
	}
	return post, nil
}

func (r *mongoPostRepository) DeletePost(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete post_id=%s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("table:posts: post_id=%s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository returns the mongo ProfileRepository.
func NewMongoProfileRepository(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepository{collection: db.Collection(database.ProfilesCollection)}
}

func (r *mongoProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.collection.FindOne(ctx, bson.D{{Key: "user", Value: userID}}).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to find document in table:profiles: user_id=%s: %w", userID, err)
	}
	return &profile, nil
}
