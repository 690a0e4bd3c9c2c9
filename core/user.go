package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/security"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := NewValidationError()
	requireText(v, "name", name, "Name")
	requireEmail(v, "email", email)
	if len(password) < minPasswordLength {
		v.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, upstream("hash password", err)
	}
	user := &model.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}

	// the unique index on email rejects duplicates
	err = s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		v.Add("email", "Email is already registered")
		return nil, v
	}
	if err != nil {
		return nil, upstream("register user", err)
	}

	s.log.WithField("user", user.ID).Info("user registered")
	return s.issue(user)
}

// Login checks credentials. Unknown email and wrong password are not told apart.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.First(&user, "email = ?", email).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, upstream("find user", err)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	return s.issue(&user)
}

func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.First(&user, "id = ?", userID).Error
	}); err != nil {
		return nil, notFound("user", userID, err)
	}
	return &user, nil
}

// IssueToken mints a token for an existing user, as the createtoken command does.
func (s *Service) IssueToken(ctx context.Context, userID string) (*AuthResult, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *Service) issue(user *model.User) (*AuthResult, error) {
	if s.tokens == nil {
		return nil, &UpstreamError{Op: "issue token", Err: errors.New("no token issuer configured")}
	}
	token, exp, err := s.tokens.CreateIdentityToken(user.ID, security.Identity{Name: user.Name, Email: user.Email})
	if err != nil {
		return nil, upstream("issue token", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
