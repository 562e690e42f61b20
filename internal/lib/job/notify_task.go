package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskPostLiked     = "notify:post_liked"
	TaskPostCommented = "notify:post_commented"
)

// PostLikedPayload is the JSON payload of TaskPostLiked.
type PostLikedPayload struct {
	PostID   string `json:"post_id"`
	OwnerID  string `json:"owner_id"`
	LikerID  string `json:"liker_id"`
	PostText string `json:"post_text"`
}

// PostCommentedPayload is the JSON payload of TaskPostCommented.
type PostCommentedPayload struct {
	PostID        string `json:"post_id"`
	OwnerID       string `json:"owner_id"`
	CommenterID   string `json:"commenter_id"`
	CommenterName string `json:"commenter_name"`
	PostText      string `json:"post_text"`
	CommentText   string `json:"comment_text"`
}

func notificationOptions() []asynq.Option {
	return []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30 * time.Second),
	}
}

// NewPostLikedTask builds the task that emails a post's author about a like.
func NewPostLikedTask(p PostLikedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPostLiked, payload, notificationOptions()...), nil
}

// NewPostCommentedTask builds the task that emails a post's author about a comment.
func NewPostCommentedTask(p PostCommentedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPostCommented, payload, notificationOptions()...), nil
}
