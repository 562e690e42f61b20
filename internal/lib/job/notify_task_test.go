package job

import (
	"encoding/json"
	"testing"
)

func TestNewPostCommentedTask(t *testing.T) {
	task, err := NewPostCommentedTask(PostCommentedPayload{PostID: "p1", OwnerID: "o1", CommentText: "nice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskPostCommented {
		t.Fatalf("unexpected type %q", task.Type())
	}

	var p PostCommentedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload must be json: %v", err)
	}
	if p.OwnerID != "o1" || p.CommentText != "nice" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}
