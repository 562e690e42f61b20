package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-posts/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id, user_id, name, avatar, text, likes, comments, created_at`

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns the postgres PostRepository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) ListPosts(ctx context.Context) ([]model.Post, error) {
	stmt := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list posts query: %w", err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:posts: %w", err)
	}

	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	stmt := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = @id
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get post query for post_id=%s: %w", id, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:posts: post_id=%s: %w", id, err)
	}

	post.Normalize()
	return &post, nil
}

func (r *postRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.Normalize()

	stmt := `
		INSERT INTO posts (id, user_id, name, avatar, text, likes, comments, created_at)
		VALUES (@id, @user_id, @name, @avatar, @text, @likes, @comments, @created_at)
		RETURNING ` + postColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":         post.ID,
		"user_id":    post.User,
		"name":       post.Name,
		"avatar":     post.Avatar,
		"text":       post.Text,
		"likes":      post.Likes,
		"comments":   post.Comments,
		"created_at": post.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create post query for user_id=%s: %w", post.User, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:posts: user_id=%s: %w", post.User, err)
	}

	created.Normalize()
	return &created, nil
}

func (r *postRepository) SavePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.Normalize()

	stmt := `
		UPDATE posts
		SET
			name = @name,
			avatar = @avatar,
			text = @text,
			likes = @likes,
			comments = @comments,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = @id
		RETURNING ` + postColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":       post.ID,
		"name":     post.Name,
		"avatar":   post.Avatar,
		"text":     post.Text,
		"likes":    post.Likes,
		"comments": post.Comments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute save post query for post_id=%s: %w", post.ID, err)
	}

	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:posts: post_id=%s: %w", post.ID, err)
	}

	saved.Normalize()
	return &saved, nil
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to execute delete post query for post_id=%s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:posts: post_id=%s: %w", id, pgx.ErrNoRows)
	}
	return nil
}
