package model

import "time"

// User is a registered account. Every user can both read and publish;
// "creator" is a projection of the same row.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	DisplayName     string
	AvatarImageURL  string
	Bio             string
	Website         string
	Instagram       string
	Facebook        string
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SocialLinks groups the optional external profile links.
type SocialLinks struct {
	Website   string `json:"website"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
}

// Profile is the public slice of a user.
type Profile struct {
	DisplayName    string      `json:"displayName"`
	AvatarImageURL string      `json:"avatarImageUrl"`
	Bio            string      `json:"bio"`
	SocialLinks    SocialLinks `json:"socialLinks"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"required,max=50"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailRequest is the POST /auth/verify-email body.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the PATCH /auth/reset-password body.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ForgotPasswordRequest is the POST /auth/forgot-password body.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest is the PATCH /user body. Nil fields are left unchanged.
type UpdateUserRequest struct {
	DisplayName    *string `json:"displayName" validate:"omitempty,max=50"`
	AvatarImageURL *string `json:"avatarImageUrl"`
	Bio            *string `json:"bio"`
	Website        *string `json:"website" validate:"omitempty,url"`
	Instagram      *string `json:"instagram" validate:"omitempty,url"`
	Facebook       *string `json:"facebook" validate:"omitempty,url"`
}

// UserInfo is the GET /user payload.
type UserInfo struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	IsEmailVerified bool    `json:"isEmailVerified"`
	Profile         Profile `json:"profile"`
	Subscriptions   int     `json:"subscriptions"`
	Subscribers     int     `json:"subscribers"`
}

// FollowerInfo is one entry of a followers/followings listing.
type FollowerInfo struct {
	UserID         string `json:"userId"`
	DisplayName    string `json:"displayName"`
	AvatarImageURL string `json:"avatarImageUrl"`
	Bio            string `json:"bio"`
}

// Creator is one entry of the creator listing.
type Creator struct {
	UserID         string      `json:"userId"`
	Email          string      `json:"email"`
	DisplayName    string      `json:"displayName"`
	AvatarImageURL string      `json:"avatarImageUrl"`
	Bio            string      `json:"bio"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	Followers      int         `json:"followers"`
	Followings     int         `json:"followings"`
}
