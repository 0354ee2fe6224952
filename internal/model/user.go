package model

import "time"

type UserID string

type UserStatus int

const (
	UserStatusActive UserStatus = iota
	UserStatusLocked
)

func (s UserStatus) String() string {
	if s == UserStatusLocked {
		return "locked"
	}
	return "active"
}

type CreateUserParams struct {
	Name     string
	Email    string
	Age      int
	Password string
}

// UpdateUserParams is a partial overwrite: nil fields are left untouched.
type UpdateUserParams struct {
	Name           *string
	Email          *string
	Age            *int
	ProfilePicture *string
}

func (p *UpdateUserParams) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.ProfilePicture == nil
}

type User struct {
	ID             UserID     `db:"id" json:"id"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updatedAt"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	Age            int        `db:"age" json:"age"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	FailedAttempts int        `db:"failed_attempts" json:"-"`
	AccountLocked  bool       `db:"account_locked" json:"-"`
	ProfilePicture *string    `db:"profile_picture" json:"profilePicture,omitempty"`
}

func (u *User) Status() UserStatus {
	if u.AccountLocked {
		return UserStatusLocked
	}
	return UserStatusActive
}

// PictureURL is the stored profile picture reference or an empty string.
func (u *User) PictureURL() string {
	if u.ProfilePicture == nil {
		return ""
	}
	return *u.ProfilePicture
}
