package model

import "time"

// Comment is a user comment on an article.
type Comment struct {
	ID             string    `json:"id"`
	ArticleID      string    `json:"articleId"`
	UserID         string    `json:"userId"`
	DisplayName    string    `json:"displayName"`
	AvatarImageURL string    `json:"avatarImageUrl"`
	Content        string    `json:"content"`
	Likes          int       `json:"likes"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CommentRequest is the body for creating or updating a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
