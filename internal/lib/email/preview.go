package email

// PreviewData holds sample data for every template, keyed by template name.
// Tests render each template with it.
var PreviewData = map[Template]map[string]string{
	TemplatePostLiked: {
		"OwnerName": "Jane",
		"ActorName": "John",
		"PostText":  "Shipped the new release today!",
	},
	TemplatePostCommented: {
		"OwnerName":   "Jane",
		"ActorName":   "John",
		"PostText":    "Shipped the new release today!",
		"CommentText": "Congrats, looks great.",
	},
}
