package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository handles comment persistence.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment on an article.
func (r *CommentRepository) Create(ctx context.Context, userID, articleID, content string) error {
	query := `INSERT INTO comments (id, article_id, user_id, content) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), articleID, userID, content)
	return err
}

// ListByArticle lists an article's comments with author info, oldest first.
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	query := `SELECT m.id, m.article_id, m.user_id, u.display_name, u.avatar_image_url,
			m.content, m.likes, m.created_at
		FROM comments m JOIN users u ON u.id = m.user_id
		WHERE m.article_id = ? ORDER BY m.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.DisplayName, &c.AvatarImageURL,
			&c.Content, &c.Likes, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// Update rewrites the content of a comment owned by userID. A zero-row match
// reports ErrCommentNotFound.
func (r *CommentRepository) Update(ctx context.Context, userID, commentID, content string) error {
	query := `UPDATE comments SET content = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, content, commentID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrCommentNotFound)
}

// Delete removes a comment owned by userID. A zero-row match reports
// ErrCommentNotFound.
func (r *CommentRepository) Delete(ctx context.Context, userID, commentID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND user_id = ?`, commentID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrCommentNotFound)
}
