package handler

import (
	"net/http"

	"github.com/deppfellow/go-posts/internal/middleware"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/server"
	"github.com/deppfellow/go-posts/internal/service"
	"github.com/labstack/echo/v4"
)

// PostHandler adapts PostService to HTTP.
type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

// Test is the unauthenticated smoke route of the posts resource.
func (h *PostHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, model.TestResponse{Msg: "posts works"})
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, _ *model.ListPostsRequest) ([]model.Post, error) {
			return h.postService.ListPosts(c)
		},
		http.StatusOK,
		&model.ListPostsRequest{},
	)(c)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.GetPostRequest) (*model.Post, error) {
			return h.postService.GetPostByID(c, payload.ID)
		},
		http.StatusOK,
		&model.GetPostRequest{},
	)(c)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.CreatePostRequest) (*model.Post, error) {
			return h.postService.CreatePost(c, middleware.GetUserID(c), payload)
		},
		http.StatusOK,
		&model.CreatePostRequest{},
	)(c)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.DeletePostRequest) (*model.DeletePostResponse, error) {
			return h.postService.DeletePost(c, middleware.GetUserID(c), payload.ID)
		},
		http.StatusOK,
		&model.DeletePostRequest{},
	)(c)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.LikePostRequest) (*model.Post, error) {
			return h.postService.LikePost(c, middleware.GetUserID(c), payload.ID)
		},
		http.StatusOK,
		&model.LikePostRequest{},
	)(c)
}

func (h *PostHandler) UnlikePost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.UnlikePostRequest) (*model.Post, error) {
			return h.postService.UnlikePost(c, middleware.GetUserID(c), payload.ID)
		},
		http.StatusOK,
		&model.UnlikePostRequest{},
	)(c)
}

func (h *PostHandler) AddComment(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.AddCommentRequest) (*model.Post, error) {
			return h.postService.AddComment(c, middleware.GetUserID(c), payload)
		},
		http.StatusOK,
		&model.AddCommentRequest{},
	)(c)
}

func (h *PostHandler) DeleteComment(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.DeleteCommentRequest) (*model.Post, error) {
			return h.postService.DeleteComment(c, middleware.GetUserID(c), payload.ID, payload.CommentID)
		},
		http.StatusOK,
		&model.DeleteCommentRequest{},
	)(c)
}
