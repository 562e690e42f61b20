// Package model holds the domain documents stored by the repositories
// and the request payloads accepted by the handlers.
package model

import "time"

// Post is a user-authored text entry with its likes and comments embedded.
//
// Likes and Comments are ordered newest first. A user appears in Likes at
// most once.
type Post struct {
	ID       string    `json:"id" db:"id" bson:"_id"`
	User     string    `json:"user" db:"user_id" bson:"user"`
	Name     string    `json:"name" db:"name" bson:"name"`
	Avatar   string    `json:"avatar" db:"avatar" bson:"avatar"`
	Text     string    `json:"text" db:"text" bson:"text"`
	Likes    []Like    `json:"likes" db:"likes" bson:"likes"`
	Comments []Comment `json:"comments" db:"comments" bson:"comments"`
	Date     time.Time `json:"date" db:"created_at" bson:"date"`
}

// Like is a user's endorsement of a post.
type Like struct {
	User string `json:"user" bson:"user"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID     string    `json:"id" bson:"id"`
	User   string    `json:"user" bson:"user"`
	Name   string    `json:"name" bson:"name"`
	Avatar string    `json:"avatar" bson:"avatar"`
	Text   string    `json:"text" bson:"text"`
	Date   time.Time `json:"date" bson:"date"`
}

// Profile is the public profile of a user. Posts only look it up.
type Profile struct {
	User      string    `json:"user" db:"user_id" bson:"user"`
	Handle    string    `json:"handle" db:"handle" bson:"handle"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

// LikeIndex returns the position of userID's like, or -1.
func (p *Post) LikeIndex(userID string) int {
	for i, like := range p.Likes {
		if like.User == userID {
			return i
		}
	}
	return -1
}

// LikedBy reports whether userID already likes the post.
func (p *Post) LikedBy(userID string) bool {
	return p.LikeIndex(userID) >= 0
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (p *Post) CommentIndex(commentID string) int {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			return i
		}
	}
	return -1
}

// Normalize replaces nil lists with empty ones so the post always
// serializes "likes":[] and "comments":[].
func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}
