package email

// Template names an embedded email template (templates/<name>.html).
type Template string

const (
	TemplatePostLiked     Template = "post_liked"
	TemplatePostCommented Template = "post_commented"
)
