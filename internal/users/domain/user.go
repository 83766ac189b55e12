package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 30 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptySubjectID   = errors.New("subject ID cannot be empty")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is an authenticated identity. SubjectID is the stable identifier
// issued by the external identity provider (the JWT subject); ID is our
// internal canonical identifier that everything else keys on.
type User struct {
	ID          uuid.UUID
	SubjectID   string
	Email       string
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewUser(subjectID, email, username string) (*User, error) {
	if subjectID == "" {
		return nil, ErrEmptySubjectID
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Email:     email,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile sets the optional profile fields. Empty values leave the
// existing field untouched.
func (u *User) UpdateProfile(displayName, bio, avatarURL string) {
	if displayName != "" {
		u.DisplayName = displayName
	}
	if bio != "" {
		u.Bio = bio
	}
	if avatarURL != "" {
		u.AvatarURL = avatarURL
	}
	u.UpdatedAt = time.Now()
}

func validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 30 {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
