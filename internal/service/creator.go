package service

import (
	"context"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

// CreatorService handles the public creator directory.
type CreatorService struct {
	users UserStore
}

// NewCreatorService creates a new CreatorService.
func NewCreatorService(users UserStore) *CreatorService {
	return &CreatorService{users: users}
}

// List returns a page of creators. Unknown sorts fall back to the common
// (most recent first) ordering.
func (s *CreatorService) List(ctx context.Context, p model.Pagination, sort, keyword string) ([]model.Creator, error) {
	switch sort {
	case repository.CreatorSortHot, repository.CreatorSortRandom:
	default:
		sort = repository.CreatorSortCommon
	}
	return s.users.ListCreators(ctx, p, sort, keyword)
}

// Followers lists the users following the creator.
func (s *CreatorService) Followers(ctx context.Context, creatorID string) ([]model.FollowerInfo, error) {
	return s.users.Followers(ctx, creatorID)
}

// Followings lists the users the creator follows.
func (s *CreatorService) Followings(ctx context.Context, creatorID string) ([]model.FollowerInfo, error) {
	return s.users.Followings(ctx, creatorID)
}
