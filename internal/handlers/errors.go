package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"uk.co.dudmesh.usermanager/internal/model"
)

const HeaderErrorCode = "X-Error-Code"

// routeError carries the generic message a route answers with when the store fails.
type routeError struct {
	err     error
	message string
}

func (e *routeError) Error() string {
	return e.message + ": " + e.err.Error()
}

func (e *routeError) Unwrap() error {
	return e.err
}

func fail(err error, message string) error {
	return &routeError{err, message}
}

// ErrorHandler renders domain errors as plain text. Login failures answer 200 so the login
// form keeps the behaviour browsers already rely on; the code header tells them apart.
func ErrorHandler(server *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var re *routeError
		if !errors.As(err, &re) {
			server.DefaultHTTPErrorHandler(err, c)
			return
		}

		code := model.CodeOf(re.err)
		c.Response().Header().Set(HeaderErrorCode, string(code))

		status := http.StatusInternalServerError
		message := re.message
		var domainErr *model.Error
		switch code {
		case model.CodeInvalidCredentials, model.CodeAccountLocked:
			status = http.StatusOK
		case model.CodeNotFound:
			status = http.StatusNotFound
		case model.CodeValidationFailed:
			status = http.StatusBadRequest
		}
		if status != http.StatusInternalServerError && errors.As(re.err, &domainErr) {
			message = domainErr.Message
		} else {
			c.Logger().Errorf("%s: %+v", re.message, re.err)
		}

		if err := c.String(status, message); err != nil {
			c.Logger().Error(err)
		}
	}
}
