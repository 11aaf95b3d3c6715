package model

import "time"

// Article is a published piece of content. Likes and views are denormalized
// counters maintained alongside the like/view membership rows.
type Article struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creatorId"`
	CategoryID   string    `json:"-"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Abstract     string    `json:"abstract"`
	Content      string    `json:"content"`
	IsNeedPay    bool      `json:"isNeedPay"`
	WordCount    int       `json:"wordCount"`
	ReadingTime  int       `json:"readingTime"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Tags         []string  `json:"tags"`
	Likes        int       `json:"likes"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateArticleRequest is the POST /article body.
type CreateArticleRequest struct {
	Title        string   `json:"title" validate:"required,min=1"`
	Abstract     string   `json:"abstract"`
	Content      string   `json:"content" validate:"required"`
	IsNeedPay    bool     `json:"isNeedPay"`
	WordCount    int      `json:"wordCount" validate:"gte=0"`
	Category     string   `json:"category" validate:"required"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Tags         []string `json:"tags"`
}

// UpdateArticleRequest is the PATCH /article/{articleId} body. Nil fields are
// left unchanged.
type UpdateArticleRequest struct {
	Title        *string   `json:"title" validate:"omitempty,min=1"`
	Abstract     *string   `json:"abstract"`
	Content      *string   `json:"content"`
	IsNeedPay    *bool     `json:"isNeedPay"`
	WordCount    *int      `json:"wordCount" validate:"omitempty,gte=0"`
	Category     *string   `json:"category"`
	ThumbnailURL *string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Tags         *[]string `json:"tags"`
}

// ArticleListParams filters and pages a listing. Keyword matches title and
// abstract case-insensitively; Hot orders by likes descending.
type ArticleListParams struct {
	Pagination
	Keyword  string
	Category string
	Hot      bool
}
