package service

import (
	"context"
	"time"

	"github.com/deppfellow/go-posts/internal/errs"
	"github.com/deppfellow/go-posts/internal/lib/job"
	"github.com/deppfellow/go-posts/internal/middleware"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/repository"
	"github.com/deppfellow/go-posts/internal/server"
	"github.com/deppfellow/go-posts/internal/sqlerr"
	"github.com/deppfellow/go-posts/internal/validation"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Error codes returned by PostService.
const (
	CodePostNotFound    = "POST_NOT_FOUND"
	CodeNoPostsFound    = "NO_POSTS_FOUND"
	CodeNotAuthorized   = "NOT_AUTHORIZED"
	CodeAlreadyLiked    = "ALREADY_LIKED"
	CodeNotLiked        = "NOT_LIKED"
	CodeCommentNotFound = "COMMENT_NOT_FOUND"
)

func errPostNotFound() error {
	code := CodePostNotFound
	return errs.NewNotFoundError("No post found", true, &code)
}

func errNoPostsFound() error {
	code := CodeNoPostsFound
	return errs.NewNotFoundError("No posts found", true, &code)
}

func errNotAuthorized() error {
	code := CodeNotAuthorized
	return errs.NewUnauthorizedError("User not authorized", true, &code)
}

func errAlreadyLiked() error {
	code := CodeAlreadyLiked
	return errs.NewBadRequestError("User already liked this post", true, &code, nil, nil)
}

func errNotLiked() error {
	code := CodeNotLiked
	return errs.NewBadRequestError("You have not yet liked this post", true, &code, nil, nil)
}

func errCommentNotFound() error {
	code := CodeCommentNotFound
	return errs.NewNotFoundError("Comment does not exist", true, &code)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type PostService struct {
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	tasks    TaskEnqueuer
	now      func() time.Time
}

// NewPostService builds a PostService. tasks may be nil, in which case
// no notifications are enqueued.
func NewPostService(posts repository.PostRepository, profiles repository.ProfileRepository, tasks TaskEnqueuer) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		tasks:    tasks,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func newPostServiceFromServer(s *server.Server, repos *repository.Repositories) *PostService {
	var tasks TaskEnqueuer
	if s.Job != nil && s.Job.Client != nil {
		tasks = s.Job.Client
	}
	return NewPostService(repos.Posts, repos.Profiles, tasks)
}

// ListPosts returns all posts, newest first. Store failures are reported
// as not-found.
func (s *PostService) ListPosts(ctx echo.Context) ([]model.Post, error) {
	logger := middleware.GetLogger(ctx)

	posts, err := s.posts.ListPosts(ctx.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to list posts")
		return nil, errNoPostsFound()
	}

	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// GetPostByID returns one post. Malformed ids, missing posts and store
// failures are all reported as not-found.
func (s *PostService) GetPostByID(ctx echo.Context, postID string) (*model.Post, error) {
	return s.findPost(ctx, postID)
}

func (s *PostService) findPost(ctx echo.Context, postID string) (*model.Post, error) {
	logger := middleware.GetLogger(ctx)

	if !validation.IsValidUUID(postID) {
		logger.Debug().Str("post_id", postID).Msg("malformed post id")
		return nil, errPostNotFound()
	}

	post, err := s.posts.GetPostByID(ctx.Request().Context(), postID)
	if err != nil {
		if !sqlerr.IsNotFound(err) {
			logger.Error().Err(err).Str("post_id", postID).Msg("failed to fetch post")
		}
		return nil, errPostNotFound()
	}

	return post, nil
}

// lookupProfile fetches the caller's profile before a mutation. The
// result only ends up in the logs; a missing profile does not block anything.
func (s *PostService) lookupProfile(ctx echo.Context, userID string) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.profiles.GetProfileByUserID(ctx.Request().Context(), userID)
	switch {
	case err == nil:
		logger.Debug().Str("handle", profile.Handle).Msg("caller profile found")
	case sqlerr.IsNotFound(err):
		logger.Debug().Msg("caller has no profile")
	default:
		logger.Warn().Err(err).Msg("failed to look up caller profile")
	}
}

func (s *PostService) save(ctx echo.Context, post *model.Post) (*model.Post, error) {
	saved, err := s.posts.SavePost(ctx.Request().Context(), post)
	if err != nil {
		middleware.GetLogger(ctx).Error().Err(err).Str("post_id", post.ID).Msg("failed to save post")
		if sqlerr.IsNotFound(err) {
			return nil, errPostNotFound()
		}
		return nil, sqlerr.HandleError(err)
	}
	return saved, nil
}

func (s *PostService) CreatePost(ctx echo.Context, userID string, payload *model.CreatePostRequest) (*model.Post, error) {
	logger := middleware.GetLogger(ctx)

	post := &model.Post{
		ID:       uuid.NewString(),
		User:     userID,
		Name:     payload.Name,
		Avatar:   payload.Avatar,
		Text:     payload.Text,
		Likes:    []model.Like{},
		Comments: []model.Comment{},
		Date:     s.now(),
	}

	created, err := s.posts.CreatePost(ctx.Request().Context(), post)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create post")
		return nil, sqlerr.HandleError(err)
	}

	logger.Info().
		Str("event", "post_created").
		Str("post_id", created.ID).
		Msg("Post created successfully")

	return created, nil
}

// DeletePost removes a post. Only its author may do so.
func (s *PostService) DeletePost(ctx echo.Context, userID, postID string) (*model.DeletePostResponse, error) {
	logger := middleware.GetLogger(ctx)

	s.lookupProfile(ctx, userID)

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.User != userID {
		logger.Warn().Str("post_id", postID).Str("owner_id", post.User).Msg("delete by non-owner rejected")
		return nil, errNotAuthorized()
	}

	if err := s.posts.DeletePost(ctx.Request().Context(), postID); err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, errPostNotFound()
		}
		logger.Error().Err(err).Str("post_id", postID).Msg("failed to delete post")
		return nil, sqlerr.HandleError(err)
	}

	logger.Info().
		Str("event", "post_deleted").
		Str("post_id", postID).
		Msg("Post deleted successfully")

	return &model.DeletePostResponse{Success: true}, nil
}

// LikePost prepends the caller to the post's likes. A second like by the
// same user is rejected and leaves the list unchanged.
func (s *PostService) LikePost(ctx echo.Context, userID, postID string) (*model.Post, error) {
	s.lookupProfile(ctx, userID)

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		return nil, errAlreadyLiked()
	}

	post.Likes = append([]model.Like{{User: userID}}, post.Likes...)

	saved, err := s.save(ctx, post)
	if err != nil {
		return nil, err
	}

	if saved.User != userID {
		s.enqueue(ctx, func() (*asynq.Task, error) {
			return job.NewPostLikedTask(job.PostLikedPayload{
				PostID:   saved.ID,
				OwnerID:  saved.User,
				LikerID:  userID,
				PostText: saved.Text,
			})
		})
	}

	return saved, nil
}

// UnlikePost removes the caller's like.
func (s *PostService) UnlikePost(ctx echo.Context, userID, postID string) (*model.Post, error) {
	s.lookupProfile(ctx, userID)

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := post.LikeIndex(userID)
	if idx < 0 {
		return nil, errNotLiked()
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)

	return s.save(ctx, post)
}

// AddComment prepends a new comment by the caller.
func (s *PostService) AddComment(ctx echo.Context, userID string, payload *model.AddCommentRequest) (*model.Post, error) {
	post, err := s.findPost(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:     uuid.NewString(),
		User:   userID,
		Name:   payload.Name,
		Avatar: payload.Avatar,
		Text:   payload.Text,
		Date:   s.now(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)

	saved, err := s.save(ctx, post)
	if err != nil {
		return nil, err
	}

	if saved.User != userID {
		s.enqueue(ctx, func() (*asynq.Task, error) {
			return job.NewPostCommentedTask(job.PostCommentedPayload{
				PostID:        saved.ID,
				OwnerID:       saved.User,
				CommenterID:   userID,
				CommenterName: comment.Name,
				PostText:      saved.Text,
				CommentText:   comment.Text,
			})
		})
	}

	return saved, nil
}

// DeleteComment removes a comment by id.
func (s *PostService) DeleteComment(ctx echo.Context, userID, postID, commentID string) (*model.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := post.CommentIndex(commentID)
	if idx < 0 {
		return nil, errCommentNotFound()
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	middleware.GetLogger(ctx).Info().
		Str("post_id", postID).
		Str("comment_id", commentID).
		Msg("Comment removed")

	return s.save(ctx, post)
}

// enqueue schedules a notification. Failures are logged only.
func (s *PostService) enqueue(ctx echo.Context, build func() (*asynq.Task, error)) {
	if s.tasks == nil {
		return
	}

	logger := middleware.GetLogger(ctx)

	task, err := build()
	if err != nil {
		logger.Error().Err(err).Msg("failed to build notification task")
		return
	}

	info, err := s.tasks.EnqueueContext(ctx.Request().Context(), task)
	if err != nil {
		logger.Error().Err(err).Str("type", task.Type()).Msg("failed to enqueue notification task")
		return
	}

	logger.Debug().
		Dict("task", zerolog.Dict().Str("id", info.ID).Str("queue", info.Queue)).
		Str("type", task.Type()).
		Msg("notification task enqueued")
}
