package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrAlreadyLiked    = errors.New("article already liked")
	ErrNotLiked        = errors.New("article not liked yet")
)

const articleColumns = `a.id, a.creator_id, a.category_id, c.name, a.title, a.abstract,
	a.content, a.is_need_pay, a.word_count, a.reading_time, a.thumbnail_url, a.tags,
	a.likes, a.views, a.created_at, a.updated_at`

const articleFrom = ` FROM articles a JOIN categories c ON c.id = a.category_id`

// ArticleRepository handles article, like and comment persistence.
type ArticleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new article and sets the generated id on the struct.
func (r *ArticleRepository) Create(ctx context.Context, article *model.Article) error {
	article.ID = uuid.NewString()
	article.ReadingTime = readingTime(article.WordCount)

	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO articles
		(id, creator_id, category_id, title, abstract, content, is_need_pay,
		 word_count, reading_time, thumbnail_url, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		article.ID, article.CreatorID, article.CategoryID, article.Title, article.Abstract,
		article.Content, article.IsNeedPay, article.WordCount, article.ReadingTime,
		article.ThumbnailURL, tags,
	)
	return err
}

// GetByID retrieves an article with its category name.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*model.Article, error) {
	query := `SELECT ` + articleColumns + articleFrom + ` WHERE a.id = ?`
	return r.scanArticle(r.db.QueryRowContext(ctx, query, id))
}

func (r *ArticleRepository) scanArticle(row *sql.Row) (*model.Article, error) {
	var a model.Article
	var tags []byte
	err := row.Scan(
		&a.ID, &a.CreatorID, &a.CategoryID, &a.Category, &a.Title, &a.Abstract,
		&a.Content, &a.IsNeedPay, &a.WordCount, &a.ReadingTime, &a.ThumbnailURL, &tags,
		&a.Likes, &a.Views, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(tags, &a.Tags); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies the non-nil fields of req to an article owned by creatorID.
// A zero-row match reports ErrArticleNotFound.
func (r *ArticleRepository) Update(ctx context.Context, creatorID, articleID string, req model.UpdateArticleRequest, categoryID string) error {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 10)

	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Abstract != nil {
		sets = append(sets, "abstract = ?")
		args = append(args, *req.Abstract)
	}
	if req.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *req.Content)
	}
	if req.IsNeedPay != nil {
		sets = append(sets, "is_need_pay = ?")
		args = append(args, *req.IsNeedPay)
	}
	if req.WordCount != nil {
		sets = append(sets, "word_count = ?, reading_time = ?")
		args = append(args, *req.WordCount, readingTime(*req.WordCount))
	}
	if req.ThumbnailURL != nil {
		sets = append(sets, "thumbnail_url = ?")
		args = append(args, *req.ThumbnailURL)
	}
	if req.Tags != nil {
		tags, err := json.Marshal(*req.Tags)
		if err != nil {
			return err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if categoryID != "" {
		sets = append(sets, "category_id = ?")
		args = append(args, categoryID)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, articleID, creatorID)
	query := fmt.Sprintf(`UPDATE articles SET %s WHERE id = ? AND creator_id = ?`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(result, ErrArticleNotFound)
}

// Delete removes an article owned by creatorID. A zero-row match reports
// ErrArticleNotFound.
func (r *ArticleRepository) Delete(ctx context.Context, creatorID, articleID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM articles WHERE id = ? AND creator_id = ?`, articleID, creatorID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrArticleNotFound)
}

// List pages through articles. Keyword matches title and abstract
// case-insensitively; Hot orders by likes descending; Category filters by
// category name.
func (r *ArticleRepository) List(ctx context.Context, p model.ArticleListParams) ([]model.Article, error) {
	where := `WHERE (LOWER(a.title) LIKE LOWER(?) OR LOWER(a.abstract) LIKE LOWER(?))`
	args := []any{"%" + p.Keyword + "%", "%" + p.Keyword + "%"}

	if p.Category != "" {
		where += " AND c.name = ?"
		args = append(args, p.Category)
	}

	orderBy := "a.created_at DESC"
	if p.Hot {
		orderBy = "a.likes DESC"
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT ? OFFSET ?`,
		articleColumns, articleFrom, where, orderBy)
	args = append(args, p.PageSize, p.Offset())

	return r.queryArticles(ctx, query, args...)
}

// ListByCreator lists all articles by one creator, newest first.
func (r *ArticleRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + articleFrom + ` WHERE a.creator_id = ? ORDER BY a.created_at DESC`
	return r.queryArticles(ctx, query, creatorID)
}

// ListHot returns the count most-liked articles; count < 1 means no limit.
func (r *ArticleRepository) ListHot(ctx context.Context, count int) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + articleFrom + ` ORDER BY a.likes DESC`
	if count > 0 {
		query += ` LIMIT ?`
		return r.queryArticles(ctx, query, count)
	}
	return r.queryArticles(ctx, query)
}

func (r *ArticleRepository) queryArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		var tags []byte
		if err := rows.Scan(
			&a.ID, &a.CreatorID, &a.CategoryID, &a.Category, &a.Title, &a.Abstract,
			&a.Content, &a.IsNeedPay, &a.WordCount, &a.ReadingTime, &a.ThumbnailURL, &tags,
			&a.Likes, &a.Views, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// IsLiked reports whether userID has liked articleID.
func (r *ArticleRepository) IsLiked(ctx context.Context, userID, articleID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM article_likes WHERE user_id = ? AND article_id = ?)`

	var liked bool
	if err := r.db.QueryRowContext(ctx, query, userID, articleID).Scan(&liked); err != nil {
		return false, err
	}
	return liked, nil
}

// Like records a like and bumps the denormalized counter. The two statements
// are independent operations; there is no compensating logic if the counter
// update fails.
func (r *ArticleRepository) Like(ctx context.Context, userID, articleID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO article_likes (user_id, article_id) VALUES (?, ?)`, userID, articleID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrAlreadyLiked
		}
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE articles SET likes = likes + 1 WHERE id = ?`, articleID)
	return err
}

// Unlike removes a like and drops the counter.
func (r *ArticleRepository) Unlike(ctx context.Context, userID, articleID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM article_likes WHERE user_id = ? AND article_id = ?`, userID, articleID)
	if err != nil {
		return err
	}
	if err := requireRow(result, ErrNotLiked); err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE articles SET likes = GREATEST(likes - 1, 0) WHERE id = ?`, articleID)
	return err
}

// readingTime estimates minutes to read from the word count, assuming 200
// words per minute, rounded up.
func readingTime(wordCount int) int {
	const wordsPerMinute = 200
	return (wordCount + wordsPerMinute - 1) / wordsPerMinute
}
