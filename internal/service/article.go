package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrNotCreator       = errors.New("article not found or not the creator")
	ErrCategoryNotFound = errors.New("category not found")
	ErrAlreadyLiked     = errors.New("article already liked")
	ErrNotLiked         = errors.New("article not liked yet")
)

// previewRuneLimit caps the content of a paid article for readers that have
// not subscribed to its creator.
const previewRuneLimit = 100

// ArticleStore is the slice of the article repository the article flows need.
type ArticleStore interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id string) (*model.Article, error)
	Update(ctx context.Context, creatorID, articleID string, req model.UpdateArticleRequest, categoryID string) error
	Delete(ctx context.Context, creatorID, articleID string) error
	List(ctx context.Context, p model.ArticleListParams) ([]model.Article, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Article, error)
	ListHot(ctx context.Context, count int) ([]model.Article, error)
	IsLiked(ctx context.Context, userID, articleID string) (bool, error)
	Like(ctx context.Context, userID, articleID string) error
	Unlike(ctx context.Context, userID, articleID string) error
}

// CategoryStore is the slice of the category repository the article and
// category flows need.
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id string, category model.CategoryRequest) error
	Delete(ctx context.Context, id string) error
}

// CommentStore is the slice of the comment repository the article and
// comment flows need.
type CommentStore interface {
	Create(ctx context.Context, userID, articleID, content string) error
	ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error)
	Update(ctx context.Context, userID, commentID, content string) error
	Delete(ctx context.Context, userID, commentID string) error
}

// ArticleService handles publishing, listing, likes and comments.
type ArticleService struct {
	articles   ArticleStore
	categories CategoryStore
	comments   CommentStore
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles ArticleStore, categories CategoryStore, comments CommentStore) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		comments:   comments,
	}
}

// List returns a filtered page of articles.
func (s *ArticleService) List(ctx context.Context, p model.ArticleListParams) ([]model.Article, error) {
	return s.articles.List(ctx, p)
}

// ListHot returns the count most-liked articles.
func (s *ArticleService) ListHot(ctx context.Context, count int) ([]model.Article, error) {
	return s.articles.ListHot(ctx, count)
}

// ListByCreator returns every article published by creatorID.
func (s *ArticleService) ListByCreator(ctx context.Context, creatorID string) ([]model.Article, error) {
	return s.articles.ListByCreator(ctx, creatorID)
}

// Get returns the article with its full content. Truncation for paid content
// is decided by the caller through Preview.
func (s *ArticleService) Get(ctx context.Context, articleID string) (*model.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// Preview replaces the content of a paid article with its leading runes.
// Free articles are returned untouched.
func Preview(article *model.Article) *model.Article {
	if !article.IsNeedPay {
		return article
	}

	preview := *article
	if utf8.RuneCountInString(preview.Content) > previewRuneLimit {
		preview.Content = string([]rune(preview.Content)[:previewRuneLimit])
	}
	return &preview
}

// Create publishes a new article for creatorID and returns its id.
func (s *ArticleService) Create(ctx context.Context, creatorID string, req model.CreateArticleRequest) (string, error) {
	category, err := s.categories.GetByName(ctx, req.Category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return "", ErrCategoryNotFound
		}
		return "", err
	}

	article := &model.Article{
		CreatorID:    creatorID,
		CategoryID:   category.ID,
		Title:        req.Title,
		Abstract:     req.Abstract,
		Content:      req.Content,
		IsNeedPay:    req.IsNeedPay,
		WordCount:    req.WordCount,
		ThumbnailURL: req.ThumbnailURL,
		Tags:         req.Tags,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return "", err
	}

	return article.ID, nil
}

// Update applies the non-nil fields of req to an article owned by creatorID.
func (s *ArticleService) Update(ctx context.Context, creatorID, articleID string, req model.UpdateArticleRequest) error {
	var categoryID string
	if req.Category != nil {
		category, err := s.categories.GetByName(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		categoryID = category.ID
	}

	if err := s.articles.Update(ctx, creatorID, articleID, req, categoryID); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return ErrNotCreator
		}
		return err
	}

	return nil
}

// Delete removes an article owned by creatorID.
func (s *ArticleService) Delete(ctx context.Context, creatorID, articleID string) error {
	if err := s.articles.Delete(ctx, creatorID, articleID); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return ErrNotCreator
		}
		return err
	}
	return nil
}

// Like records userID liking articleID and bumps the like counter.
func (s *ArticleService) Like(ctx context.Context, userID, articleID string) error {
	if _, err := s.Get(ctx, articleID); err != nil {
		return err
	}

	if err := s.articles.Like(ctx, userID, articleID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike removes the like and decrements the counter.
func (s *ArticleService) Unlike(ctx context.Context, userID, articleID string) error {
	if _, err := s.Get(ctx, articleID); err != nil {
		return err
	}

	if err := s.articles.Unlike(ctx, userID, articleID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return ErrNotLiked
		}
		return err
	}
	return nil
}

// AddComment attaches a comment from userID to an existing article.
func (s *ArticleService) AddComment(ctx context.Context, userID, articleID, content string) error {
	if _, err := s.Get(ctx, articleID); err != nil {
		return err
	}
	return s.comments.Create(ctx, userID, articleID, content)
}

// Comments lists an article's comments, newest first.
func (s *ArticleService) Comments(ctx context.Context, articleID string) ([]model.Comment, error) {
	if _, err := s.Get(ctx, articleID); err != nil {
		return nil, err
	}
	return s.comments.ListByArticle(ctx, articleID)
}
