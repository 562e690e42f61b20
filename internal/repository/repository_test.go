package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/go-posts/internal/errs"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/sqlerr"
	"github.com/google/uuid"
)

// testPostRepository runs the behavior both stores must share. track is
// called with every id the test creates so the caller can clean up.
func testPostRepository(t *testing.T, repo PostRepository, track func(id string)) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)

	create := func(t *testing.T, p *model.Post) *model.Post {
		t.Helper()
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.User == "" {
			p.User = "user_" + p.ID[:8]
		}
		track(p.ID)
		created, err := repo.CreatePost(ctx, p)
		if err != nil {
			t.Fatalf("create post %s: %v", p.ID, err)
		}
		return created
	}

	t.Run("list newest first", func(t *testing.T) {
		oldest := create(t, &model.Post{Text: "oldest", Date: base})
		newest := create(t, &model.Post{Text: "newest", Date: base.Add(2 * time.Minute)})
		middle := create(t, &model.Post{Text: "middle", Date: base.Add(time.Minute)})

		posts, err := repo.ListPosts(ctx)
		if err != nil {
			t.Fatalf("list posts: %v", err)
		}

		want := []string{newest.ID, middle.ID, oldest.ID}
		ours := map[string]bool{newest.ID: true, middle.ID: true, oldest.ID: true}
		var got []string
		for _, p := range posts {
			if ours[p.ID] {
				got = append(got, p.ID)
			}
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("unexpected order:\n got %v\nwant %v", got, want)
		}

		for i := 1; i < len(posts); i++ {
			if posts[i].Date.After(posts[i-1].Date) {
				t.Fatalf("post %d (%s) is newer than post %d (%s)", i, posts[i].Date, i-1, posts[i-1].Date)
			}
		}
	})

	t.Run("likes and comments round trip", func(t *testing.T) {
		commentDate := base.Add(30 * time.Second)
		p := create(t, &model.Post{
			Text:   "with activity",
			Name:   "Ada",
			Avatar: "https://img.example/ada.png",
			Date:   base,
			Likes:  []model.Like{{User: "user_b"}, {User: "user_a"}},
			Comments: []model.Comment{{
				ID:     uuid.NewString(),
				User:   "user_b",
				Name:   "Bob",
				Avatar: "https://img.example/bob.png",
				Text:   "nice",
				Date:   commentDate,
			}},
		})

		got, err := repo.GetPostByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("get post: %v", err)
		}
		if got.Name != "Ada" || got.Text != "with activity" || !got.Date.Equal(base) {
			t.Fatalf("unexpected post: %+v", got)
		}
		if len(got.Likes) != 2 || got.Likes[0].User != "user_b" || got.Likes[1].User != "user_a" {
			t.Fatalf("likes lost order: %+v", got.Likes)
		}
		if len(got.Comments) != 1 {
			t.Fatalf("expected one comment, got %+v", got.Comments)
		}
		c := got.Comments[0]
		if c.ID != p.Comments[0].ID || c.Name != "Bob" || c.Text != "nice" || !c.Date.Equal(commentDate) {
			t.Fatalf("comment did not round trip: %+v", c)
		}

		got.Likes = got.Likes[1:]
		got.Comments = nil
		saved, err := repo.SavePost(ctx, got)
		if err != nil {
			t.Fatalf("save post: %v", err)
		}
		if len(saved.Likes) != 1 || saved.Likes[0].User != "user_a" {
			t.Fatalf("unexpected likes after save: %+v", saved.Likes)
		}

		reread, err := repo.GetPostByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("get post after save: %v", err)
		}
		if len(reread.Likes) != 1 || reread.Comments == nil || len(reread.Comments) != 0 {
			t.Fatalf("unexpected post after save: %+v", reread)
		}
	})

	t.Run("empty lists encode as arrays", func(t *testing.T) {
		p := create(t, &model.Post{Text: "quiet", Date: base})

		got, err := repo.GetPostByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("get post: %v", err)
		}
		raw, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(raw), `"likes":[]`) || !strings.Contains(string(raw), `"comments":[]`) {
			t.Fatalf("expected empty arrays, got %s", raw)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		missing := uuid.NewString()

		_, getErr := repo.GetPostByID(ctx, missing)
		_, saveErr := repo.SavePost(ctx, &model.Post{ID: missing, Text: "ghost"})
		deleteErr := repo.DeletePost(ctx, missing)

		for name, err := range map[string]error{"get": getErr, "save": saveErr, "delete": deleteErr} {
			if !sqlerr.IsNotFound(err) {
				t.Fatalf("%s: expected a not-found error, got %v", name, err)
			}
			if !strings.Contains(err.Error(), "table:posts:") {
				t.Fatalf("%s: expected the table hint in %q", name, err.Error())
			}
			httpErr, ok := errs.AsHTTPError(sqlerr.HandleError(err))
			if !ok || httpErr.Status != http.StatusNotFound {
				t.Fatalf("%s: expected a 404, got %v", name, sqlerr.HandleError(err))
			}
		}
	})

	t.Run("delete removes the post", func(t *testing.T) {
		p := create(t, &model.Post{Text: "short lived", Date: base})

		if err := repo.DeletePost(ctx, p.ID); err != nil {
			t.Fatalf("delete post: %v", err)
		}
		if _, err := repo.GetPostByID(ctx, p.ID); !sqlerr.IsNotFound(err) {
			t.Fatalf("expected deleted post to be gone, got %v", err)
		}
		if err := repo.DeletePost(ctx, p.ID); !sqlerr.IsNotFound(err) {
			t.Fatalf("second delete must be not-found, got %v", err)
		}
	})
}
