package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"uk.co.dudmesh.usermanager/internal/model"
	"uk.co.dudmesh.usermanager/internal/session"
)

const sessionContextKey = "session"

// Sessions ties the session store to the signed cookie carrying its token.
type Sessions struct {
	store session.Store
	codec *session.Codec
}

func NewSessions(store session.Store, codec *session.Codec) *Sessions {
	return &Sessions{store, codec}
}

// Start replaces whatever session the request already carried with a fresh one for user.
func (s *Sessions) Start(c echo.Context, user *model.User) error {
	if previous, ok := s.token(c); ok {
		if err := s.store.Destroy(c.Request().Context(), previous); err != nil {
			return fmt.Errorf("destroying previous session: %w", err)
		}
	}

	token := session.NewToken()
	cookie, err := s.codec.Encode(token)
	if err != nil {
		return err
	}

	err = s.store.Set(c.Request().Context(), token, &session.Context{
		UserID:    user.ID,
		UserName:  user.Name,
		ExpiresAt: cookie.Expires,
	})
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	c.SetCookie(cookie)
	return nil
}

func (s *Sessions) End(c echo.Context) error {
	c.SetCookie(s.codec.Expired())
	token, ok := s.token(c)
	if !ok {
		return nil
	}
	if err := s.store.Destroy(c.Request().Context(), token); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}

func (s *Sessions) token(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return "", false
	}
	token, err := s.codec.Decode(cookie)
	if err != nil {
		return "", false
	}
	return token, true
}

// Load resolves the session cookie, if any, for the handlers further down the chain.
func (s *Sessions) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := s.token(c); ok {
			if ctx, err := s.store.Get(c.Request().Context(), token); err == nil {
				c.Set(sessionContextKey, ctx)
			}
		}
		return next(c)
	}
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentSession(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

func CurrentSession(c echo.Context) *session.Context {
	ctx, _ := c.Get(sessionContextKey).(*session.Context)
	return ctx
}
