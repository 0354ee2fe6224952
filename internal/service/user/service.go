package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	"uk.co.dudmesh.usermanager/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id model.UserID) (*model.User, error)
	List(ctx context.Context, params *model.ListUsersParams) ([]*model.User, error)
	UpdateFields(ctx context.Context, id model.UserID, params *model.UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id model.UserID) error
}

type service struct {
	repo Repository
}

func New(repo Repository) *service {
	return &service{repo}
}

func (s *service) List(ctx context.Context, params *model.ListUsersParams) ([]*model.User, error) {
	users, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *service) Fetch(ctx context.Context, id model.UserID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// Update overwrites the supplied fields. The previous picture file is left on disk.
func (s *service) Update(ctx context.Context, id model.UserID, params *model.UpdateUserParams) (*model.User, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		params.Name = &name
	}
	if params.Email != nil {
		email := strings.TrimSpace(*params.Email)
		params.Email = &email
	}

	user, err := s.repo.UpdateFields(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	log.Infof("user: updated %s", id)
	return user, nil
}

func (s *service) Delete(ctx context.Context, id model.UserID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	log.Infof("user: deleted %s", id)
	return nil
}
