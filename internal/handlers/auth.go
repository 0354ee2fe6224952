package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"uk.co.dudmesh.usermanager/internal/model"
)

func RegisterForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "register.html", nil)
	}
}

func Register(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &RegisterRequest{}
		if err := c.Bind(req); err != nil {
			return fail(model.ValidationError(err), "Error registering user")
		}
		if err := req.Validate(); err != nil {
			return fail(model.ValidationError(err), "Error registering user")
		}

		if _, err := authService.Register(c.Request().Context(), req.Params()); err != nil {
			return fail(err, "Error registering user")
		}
		return c.Redirect(http.StatusFound, "/login")
	}
}

func LoginForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", nil)
	}
}

func Login(authService AuthService, sessions *Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &LoginRequest{}
		if err := c.Bind(req); err != nil {
			return fail(model.ErrorInvalidCredentials, "Error logging in")
		}

		user, err := authService.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return fail(err, "Error logging in")
		}

		if err := sessions.Start(c, user); err != nil {
			return fail(err, "Error logging in")
		}
		return c.Redirect(http.StatusFound, "/")
	}
}

func Logout(sessions *Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sessions.End(c); err != nil {
			c.Logger().Errorf("logout: %+v", err)
		}
		return c.Redirect(http.StatusFound, "/login")
	}
}
