package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"uk.co.dudmesh.usermanager/internal/model"
)

type indexView struct {
	Users  []*model.User
	User   string
	Search string
	SortBy string
	Order  model.SortOrder
}

func Index(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.ListUsersParams{}
		if err := c.Bind(params); err != nil {
			return fail(model.ValidationError(err), "Error fetching users")
		}
		params.Order = model.ParseSortOrder(string(params.Order))

		users, err := userService.List(c.Request().Context(), params)
		if err != nil {
			return fail(err, "Error fetching users")
		}

		return c.Render(http.StatusOK, "index.html", &indexView{
			Users:  users,
			User:   CurrentSession(c).UserName,
			Search: params.Search,
			SortBy: params.SortBy,
			Order:  params.Order,
		})
	}
}

func Profile(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := userService.Fetch(c.Request().Context(), CurrentSession(c).UserID)
		if err != nil {
			return fail(err, "Error fetching user profile")
		}
		return c.Render(http.StatusOK, "profile.html", user)
	}
}

func UpdateForm(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := userService.Fetch(c.Request().Context(), model.UserID(c.Param("id")))
		if err != nil {
			return fail(err, "Error fetching user")
		}
		return c.Render(http.StatusOK, "update.html", user)
	}
}

func Update(userService UserService, uploader Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return fail(model.ValidationError(err), "Error updating user")
		}
		req, err := parseUpdateRequest(form)
		if err != nil {
			return fail(err, "Error updating user")
		}
		if err := req.Validate(); err != nil {
			return fail(model.ValidationError(err), "Error updating user")
		}

		params := req.Params()
		file, err := c.FormFile("profilePicture")
		switch {
		case err == nil:
			ref, err := uploader.Save(file)
			if err != nil {
				return fail(err, "Error updating user")
			}
			params.ProfilePicture = &ref
		case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
			return fail(err, "Error updating user")
		}

		if _, err := userService.Update(c.Request().Context(), model.UserID(c.Param("id")), params); err != nil {
			if params.ProfilePicture != nil {
				if rmErr := uploader.Remove(*params.ProfilePicture); rmErr != nil {
					c.Logger().Errorf("discarding upload: %+v", rmErr)
				}
			}
			return fail(err, "Error updating user")
		}
		return c.Redirect(http.StatusFound, "/")
	}
}

func Delete(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := userService.Delete(c.Request().Context(), model.UserID(c.Param("id"))); err != nil {
			return fail(err, "Error deleting user")
		}
		return c.Redirect(http.StatusFound, "/")
	}
}

func Health(store Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return fail(err, "unavailable")
		}
		return c.String(http.StatusOK, "ok")
	}
}
