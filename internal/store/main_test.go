package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"uk.co.dudmesh.usermanager/internal/model"
)

var dbCounter int64

// newTestStore opens a private in-memory sqlite database per test.
func newTestStore(t *testing.T) *userstore {
	t.Helper()
	n := atomic.AddInt64(&dbCounter, 1)
	s, err := Open("sqlite3", fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", n))
	if err != nil {
		t.Fatalf("opening store: %+v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *userstore, name, email string, age int, createdAt time.Time) *model.User {
	t.Helper()
	user := &model.User{
		ID:           model.CreateID(),
		CreatedAt:    createdAt,
		Name:         name,
		Email:        email,
		Age:          age,
		PasswordHash: "hash",
	}
	if err := s.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %+v", err)
	}
	return user
}
