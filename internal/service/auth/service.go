package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"uk.co.dudmesh.usermanager/internal/metrics"
	"uk.co.dudmesh.usermanager/internal/model"
	"uk.co.dudmesh.usermanager/pkg/crypt"
)

// LockoutThreshold is the number of consecutive failed logins that locks an account.
const LockoutThreshold = 5

type Config interface {
	PasswordCost() int
}

type Credentials interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	RecordFailedLogin(ctx context.Context, id model.UserID, threshold int) (int, bool, error)
	ResetFailedLogins(ctx context.Context, id model.UserID) error
}

type service struct {
	cost  int
	store Credentials
	now   func() time.Time
}

func New(config Config, store Credentials) *service {
	return &service{
		cost:  config.PasswordCost(),
		store: store,
		now:   time.Now,
	}
}

func (s *service) Register(ctx context.Context, params *model.CreateUserParams) (*model.User, error) {
	encodedPassword, err := crypt.HashPassword(params.Password, s.cost)
	if err != nil {
		if errors.Is(err, crypt.ErrorEmptyPassword) {
			return nil, model.ValidationError(err)
		}
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           model.CreateID(),
		CreatedAt:    s.now().UTC(),
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.TrimSpace(params.Email),
		Age:          params.Age,
		PasswordHash: encodedPassword,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	metrics.Registration()
	log.Infof("auth: registered user %s", user.ID)
	return user, nil
}

// Login runs one authentication attempt. An unknown email never touches the store, a locked
// account never has its counter changed, and the account locks on the LockoutThreshold-th
// consecutive failure.
func (s *service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			metrics.LoginAttempt(metrics.OutcomeInvalidCredentials)
			return nil, model.ErrorInvalidCredentials
		}
		metrics.LoginAttempt(metrics.OutcomeError)
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if user.Status() == model.UserStatusLocked {
		metrics.LoginAttempt(metrics.OutcomeLocked)
		return nil, model.ErrorAccountLocked
	}

	err = crypt.ComparePassword(user.PasswordHash, password)
	if err != nil && !errors.Is(err, crypt.ErrorPasswordMismatch) {
		metrics.LoginAttempt(metrics.OutcomeError)
		return nil, fmt.Errorf("verifying password: %w", err)
	}

	if err != nil {
		return nil, s.fail(ctx, user)
	}

	if err := s.store.ResetFailedLogins(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrorAccountLocked) {
			metrics.LoginAttempt(metrics.OutcomeLocked)
			return nil, model.ErrorAccountLocked
		}
		metrics.LoginAttempt(metrics.OutcomeError)
		return nil, fmt.Errorf("resetting failed logins: %w", err)
	}
	user.FailedAttempts = 0

	metrics.LoginAttempt(metrics.OutcomeSuccess)
	log.Infof("auth: login ok for user %s", user.ID)
	return user, nil
}

func (s *service) fail(ctx context.Context, user *model.User) error {
	attempts, locked, err := s.store.RecordFailedLogin(ctx, user.ID, LockoutThreshold)
	if err != nil {
		if errors.Is(err, model.ErrorAccountLocked) {
			metrics.LoginAttempt(metrics.OutcomeLocked)
			return model.ErrorAccountLocked
		}
		metrics.LoginAttempt(metrics.OutcomeError)
		return fmt.Errorf("recording failed login: %w", err)
	}

	if locked {
		metrics.LoginAttempt(metrics.OutcomeLockedNow)
		log.Infof("auth: user %s locked after %d failed logins", user.ID, attempts)
		return model.ErrorAccountLocked
	}

	metrics.LoginAttempt(metrics.OutcomeInvalidCredentials)
	log.Infof("auth: login failed for user %s (%d/%d)", user.ID, attempts, LockoutThreshold)
	return model.ErrorInvalidCredentials
}
