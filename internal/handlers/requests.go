package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"uk.co.dudmesh.usermanager/internal/model"
)

// bcrypt ignores everything past the 72nd byte.
const maxPasswordBytes = 72

func maxBytes(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("must be no more than %d bytes long", limit)
		}
		return nil
	}
}

type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Age      int    `form:"age" json:"age"`
	Password string `form:"password" json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&r.Password, validation.Required, validation.By(maxBytes(maxPasswordBytes))),
	)
}

func (r RegisterRequest) Params() *model.CreateUserParams {
	return &model.CreateUserParams{
		Name:     r.Name,
		Email:    r.Email,
		Age:      r.Age,
		Password: r.Password,
	}
}

type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// UpdateRequest only carries the fields present in the submitted form.
type UpdateRequest struct {
	Name  *string
	Email *string
	Age   *int
}

func parseUpdateRequest(form url.Values) (*UpdateRequest, error) {
	r := &UpdateRequest{}
	if values, ok := form["name"]; ok && len(values) > 0 {
		r.Name = &values[0]
	}
	if values, ok := form["email"]; ok && len(values) > 0 {
		r.Email = &values[0]
	}
	if values, ok := form["age"]; ok && len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		age, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, model.ValidationError(errors.New("age: must be a whole number"))
		}
		r.Age = &age
	}
	return r, nil
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(3, 254), is.Email),
		validation.Field(&r.Age, validation.Min(0), validation.Max(150)),
	)
}

func (r UpdateRequest) Params() *model.UpdateUserParams {
	return &model.UpdateUserParams{
		Name:  r.Name,
		Email: r.Email,
		Age:   r.Age,
	}
}
