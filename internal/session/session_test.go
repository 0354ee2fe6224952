package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	token := NewToken()
	assert.NotEmpty(token)
	assert.NotEqual(token, NewToken())

	t.Run("Set and Get", func(t *testing.T) {
		err := store.Set(ctx, token, &Context{UserID: "u1", UserName: "John", ExpiresAt: now.Add(time.Hour)})
		assert.Nil(err)

		session, err := store.Get(ctx, token)
		assert.Nil(err)
		if assert.NotNil(session) {
			assert.Equal("John", session.UserName)
		}
	})

	t.Run("Unknown token", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(err, ErrorSessionNotFound)
	})

	t.Run("Expiry and sweep", func(t *testing.T) {
		assert.Nil(store.Set(ctx, "old", &Context{UserID: "u2", ExpiresAt: now.Add(time.Minute)}))
		now = now.Add(2 * time.Minute)

		_, err := store.Get(ctx, "old")
		assert.ErrorIs(err, ErrorSessionNotFound)
		assert.Equal(1, store.Sweep())

		_, err = store.Get(ctx, token)
		assert.Nil(err)
	})

	t.Run("Destroy", func(t *testing.T) {
		assert.Nil(store.Destroy(ctx, token))
		_, err := store.Get(ctx, token)
		assert.ErrorIs(err, ErrorSessionNotFound)
	})
}

func TestCodec(t *testing.T) {
	assert := assert.New(t)

	codec := NewCodec([]byte("secretkey"), time.Hour, false)

	t.Run("Round trip", func(t *testing.T) {
		cookie, err := codec.Encode("token-1")
		assert.Nil(err)
		if assert.NotNil(cookie) {
			assert.Equal(CookieName, cookie.Name)
			assert.True(cookie.HttpOnly)

			token, err := codec.Decode(cookie)
			assert.Nil(err)
			assert.Equal("token-1", token)
		}
	})

	t.Run("Wrong secret", func(t *testing.T) {
		cookie, err := NewCodec([]byte("other"), time.Hour, false).Encode("token-1")
		assert.Nil(err)
		_, err = codec.Decode(cookie)
		assert.ErrorIs(err, ErrorInvalidCookie)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := codec.Decode(&http.Cookie{Name: CookieName, Value: "token-1"})
		assert.ErrorIs(err, ErrorInvalidCookie)
	})

	t.Run("Expired", func(t *testing.T) {
		old := NewCodec([]byte("secretkey"), time.Hour, false)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		cookie, err := old.Encode("token-1")
		assert.Nil(err)
		_, err = codec.Decode(cookie)
		assert.ErrorIs(err, ErrorInvalidCookie)
	})

	t.Run("Expired cookie", func(t *testing.T) {
		assert.Equal(-1, codec.Expired().MaxAge)
	})
}
