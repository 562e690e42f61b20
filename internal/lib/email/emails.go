package email

// SendPostLikedEmail tells a post's author that someone liked it.
func (c *Client) SendPostLikedEmail(to, ownerName, likerName, postText string) error {
	data := map[string]string{
		"OwnerName": ownerName,
		"ActorName": likerName,
		"PostText":  postText,
	}

	return c.SendEmail(to, likerName+" liked your post", TemplatePostLiked, data)
}

// SendPostCommentedEmail tells a post's author about a new comment.
func (c *Client) SendPostCommentedEmail(to, ownerName, commenterName, postText, commentText string) error {
	data := map[string]string{
		"OwnerName":   ownerName,
		"ActorName":   commenterName,
		"PostText":    postText,
		"CommentText": commentText,
	}

	return c.SendEmail(to, commenterName+" commented on your post", TemplatePostCommented, data)
}
