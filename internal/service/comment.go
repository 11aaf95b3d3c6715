package service

import (
	"context"
	"errors"

	"github.com/inkstream/inkstream-go/internal/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService handles editing and removing a reader's own comments.
type CommentService struct {
	comments CommentStore
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentStore) *CommentService {
	return &CommentService{comments: comments}
}

// Update rewrites a comment owned by userID.
func (s *CommentService) Update(ctx context.Context, userID, commentID, content string) error {
	if err := s.comments.Update(ctx, userID, commentID, content); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// Delete removes a comment owned by userID.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	if err := s.comments.Delete(ctx, userID, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}
