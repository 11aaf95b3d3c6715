package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, email, password_hash, display_name, avatar_image_url, bio,
	website, instagram, facebook, is_email_verified, created_at, updated_at`

// UserRepository handles user, follow and subscription persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated id on the struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()

	query := `INSERT INTO users (id, email, password_hash, display_name) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.DisplayName); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.AvatarImageURL,
		&user.Bio, &user.Website, &user.Instagram, &user.Facebook, &user.IsEmailVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// UpdateProfile applies the non-nil fields of req to the user's profile.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, req model.UpdateUserRequest) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	appendSet := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}
	appendSet("display_name", req.DisplayName)
	appendSet("avatar_image_url", req.AvatarImageURL)
	appendSet("bio", req.Bio)
	appendSet("website", req.Website)
	appendSet("instagram", req.Instagram)
	appendSet("facebook", req.Facebook)

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// Follow records that follower follows following. Following someone twice is
// silently ignored.
func (r *UserRepository) Follow(ctx context.Context, followerID, followingID string) error {
	query := `INSERT IGNORE INTO follows (follower_id, following_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, followerID, followingID)
	return err
}

// Unfollow removes a follow edge; removing an absent edge is not an error.
func (r *UserRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = ? AND following_id = ?`
	_, err := r.db.ExecContext(ctx, query, followerID, followingID)
	return err
}

// Followers lists the users following userID.
func (r *UserRepository) Followers(ctx context.Context, userID string) ([]model.FollowerInfo, error) {
	query := `SELECT u.id, u.display_name, u.avatar_image_url, u.bio
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = ? ORDER BY f.created_at DESC`
	return r.queryFollowerInfo(ctx, query, userID)
}

// Followings lists the users userID follows.
func (r *UserRepository) Followings(ctx context.Context, userID string) ([]model.FollowerInfo, error) {
	query := `SELECT u.id, u.display_name, u.avatar_image_url, u.bio
		FROM follows f JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = ? ORDER BY f.created_at DESC`
	return r.queryFollowerInfo(ctx, query, userID)
}

func (r *UserRepository) queryFollowerInfo(ctx context.Context, query, userID string) ([]model.FollowerInfo, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []model.FollowerInfo
	for rows.Next() {
		var info model.FollowerInfo
		if err := rows.Scan(&info.UserID, &info.DisplayName, &info.AvatarImageURL, &info.Bio); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// IsSubscribed reports whether subscriberID has an active subscription to
// creatorID.
func (r *UserRepository) IsSubscribed(ctx context.Context, subscriberID, creatorID string) (bool, error) {
	if subscriberID == "" {
		return false, nil
	}

	query := `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE subscriber_id = ? AND creator_id = ?)`

	var subscribed bool
	if err := r.db.QueryRowContext(ctx, query, subscriberID, creatorID).Scan(&subscribed); err != nil {
		return false, err
	}
	return subscribed, nil
}

// SubscriptionCounts returns how many creators the user subscribes to and how
// many subscribers the user has.
func (r *UserRepository) SubscriptionCounts(ctx context.Context, userID string) (subscriptions, subscribers int, err error) {
	query := `SELECT
		(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = ?),
		(SELECT COUNT(*) FROM subscriptions WHERE creator_id = ?)`

	if err := r.db.QueryRowContext(ctx, query, userID, userID).Scan(&subscriptions, &subscribers); err != nil {
		return 0, 0, err
	}
	return subscriptions, subscribers, nil
}

// Creator listing sort modes.
const (
	CreatorSortCommon = "common"
	CreatorSortHot    = "hot"
	CreatorSortRandom = "random"
)

// ListCreators pages through users as creators. keyword matches the display
// name case-insensitively; "hot" orders by follower count descending,
// "random" returns a randomized order.
func (r *UserRepository) ListCreators(ctx context.Context, p model.Pagination, sort, keyword string) ([]model.Creator, error) {
	var orderBy string
	switch sort {
	case CreatorSortHot:
		orderBy = "followers DESC"
	case CreatorSortRandom:
		orderBy = "RAND()"
	default:
		orderBy = "u.id ASC"
	}

	query := fmt.Sprintf(`SELECT u.id, u.email, u.display_name, u.avatar_image_url, u.bio,
			u.website, u.instagram, u.facebook,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS followings
		FROM users u
		WHERE LOWER(u.display_name) LIKE LOWER(?)
		ORDER BY %s
		LIMIT ? OFFSET ?`, orderBy)

	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creators []model.Creator
	for rows.Next() {
		var c model.Creator
		if err := rows.Scan(
			&c.UserID, &c.Email, &c.DisplayName, &c.AvatarImageURL, &c.Bio,
			&c.SocialLinks.Website, &c.SocialLinks.Instagram, &c.SocialLinks.Facebook,
			&c.Followers, &c.Followings,
		); err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}

	return creators, rows.Err()
}

// requireRow converts a zero-row update/delete into the given sentinel. This
// is the scoped-mutation not-found signal, never a system failure. It relies
// on clientFoundRows=true in the DSN: RowsAffected must count matched rows,
// or a no-op update on an owned row would read as not-found.
func requireRow(result sql.Result, sentinel error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel
	}
	return nil
}

// isDuplicateEntryError checks for a MySQL duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError checks for a MySQL foreign key violation (codes 1451/1452).
func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "foreign key constraint fails")
}
