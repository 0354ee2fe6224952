package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
)

const CookieName = "sid"

var ErrorInvalidCookie = errors.New("invalid session cookie")

// Codec signs session tokens into cookie values so a client cannot forge one.
type Codec struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewCodec(secret []byte, ttl time.Duration, secure bool) *Codec {
	return &Codec{
		secret: secret,
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (c *Codec) Encode(token string) (*http.Cookie, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)
	claims := &jwt.StandardClaims{
		Id:        token,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("signing session cookie: %w", err)
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

func (c *Codec) Decode(cookie *http.Cookie) (string, error) {
	claims := &jwt.StandardClaims{}
	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrorInvalidCookie, err)
	}
	if claims.Id == "" {
		return "", ErrorInvalidCookie
	}
	return claims.Id, nil
}

// Expired is the cookie that makes the browser forget the session.
func (c *Codec) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
