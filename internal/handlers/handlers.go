package handlers

import (
	"context"
	"mime/multipart"

	"uk.co.dudmesh.usermanager/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, params *model.CreateUserParams) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type UserService interface {
	List(ctx context.Context, params *model.ListUsersParams) ([]*model.User, error)
	Fetch(ctx context.Context, id model.UserID) (*model.User, error)
	Update(ctx context.Context, id model.UserID, params *model.UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id model.UserID) error
}

type Uploader interface {
	Save(header *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
