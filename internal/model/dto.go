package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// newValidator registers "notblank" so whitespace-only text is rejected
// like empty text.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ListPostsRequest has no inputs; it exists so the list route runs
// through the same handler pipeline as the rest.
type ListPostsRequest struct{}

func (r *ListPostsRequest) Validate() error { return nil }

// GetPostRequest identifies a post by path id.
type GetPostRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *GetPostRequest) Validate() error {
	return validate.Struct(r)
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Text   string `json:"text" validate:"required,notblank,max=300"`
	Name   string `json:"name" validate:"max=100"`
	Avatar string `json:"avatar" validate:"max=2048"`
}

func (r *CreatePostRequest) Validate() error {
	return validate.Struct(r)
}

// DeletePostRequest identifies the post to delete.
type DeletePostRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *DeletePostRequest) Validate() error {
	return validate.Struct(r)
}

// LikePostRequest identifies the post to like.
type LikePostRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *LikePostRequest) Validate() error {
	return validate.Struct(r)
}

// UnlikePostRequest identifies the post to unlike.
type UnlikePostRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *UnlikePostRequest) Validate() error {
	return validate.Struct(r)
}

// AddCommentRequest is the body of POST /api/posts/comment/:id.
// It follows the same input rules as CreatePostRequest.
type AddCommentRequest struct {
	ID     string `param:"id" json:"-" validate:"required"`
	Text   string `json:"text" validate:"required,notblank,max=300"`
	Name   string `json:"name" validate:"max=100"`
	Avatar string `json:"avatar" validate:"max=2048"`
}

func (r *AddCommentRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteCommentRequest identifies a comment within a post.
type DeleteCommentRequest struct {
	ID        string `param:"id" json:"-" validate:"required"`
	CommentID string `param:"comment_id" json:"-" validate:"required"`
}

func (r *DeleteCommentRequest) Validate() error {
	return validate.Struct(r)
}

// DeletePostResponse is returned after a successful delete.
type DeletePostResponse struct {
	Success bool `json:"success"`
}

// TestResponse is the body of the /test smoke route.
type TestResponse struct {
	Msg string `json:"msg"`
}
