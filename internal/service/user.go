package service

import (
	"context"
	"errors"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// UserStore is the slice of the user repository the profile and social
// graph flows need.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, req model.UpdateUserRequest) error
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	Followers(ctx context.Context, userID string) ([]model.FollowerInfo, error)
	Followings(ctx context.Context, userID string) ([]model.FollowerInfo, error)
	IsSubscribed(ctx context.Context, subscriberID, creatorID string) (bool, error)
	SubscriptionCounts(ctx context.Context, userID string) (subscriptions, subscribers int, err error)
	ListCreators(ctx context.Context, p model.Pagination, sort, keyword string) ([]model.Creator, error)
}

// UserService handles profiles and the follow graph.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Info returns the caller's account summary.
func (s *UserService) Info(ctx context.Context, userID string) (*model.UserInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscriptions, subscribers, err := s.users.SubscriptionCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		IsEmailVerified: user.IsEmailVerified,
		Profile: model.Profile{
			DisplayName:    user.DisplayName,
			AvatarImageURL: user.AvatarImageURL,
			Bio:            user.Bio,
			SocialLinks: model.SocialLinks{
				Website:   user.Website,
				Instagram: user.Instagram,
				Facebook:  user.Facebook,
			},
		},
		Subscriptions: subscriptions,
		Subscribers:   subscribers,
	}, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateUserRequest) error {
	if err := s.users.UpdateProfile(ctx, userID, req); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Followers lists the users following userID.
func (s *UserService) Followers(ctx context.Context, userID string) ([]model.FollowerInfo, error) {
	return s.users.Followers(ctx, userID)
}

// Followings lists the users userID follows.
func (s *UserService) Followings(ctx context.Context, userID string) ([]model.FollowerInfo, error) {
	return s.users.Followings(ctx, userID)
}

// Follow makes followerID follow followingID. Following an already-followed
// user is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.users.Follow(ctx, followerID, followingID)
}

// Unfollow removes the follow edge. Unfollowing a user that was never
// followed is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.users.Unfollow(ctx, followerID, followingID)
}

// IsSubscribed reports whether subscriberID has an active subscription to
// creatorID. An empty subscriberID is never subscribed.
func (s *UserService) IsSubscribed(ctx context.Context, subscriberID, creatorID string) (bool, error) {
	return s.users.IsSubscribed(ctx, subscriberID, creatorID)
}
