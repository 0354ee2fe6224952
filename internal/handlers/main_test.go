package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"uk.co.dudmesh.usermanager/internal/service/auth"
	"uk.co.dudmesh.usermanager/internal/service/user"
	"uk.co.dudmesh.usermanager/internal/session"
	"uk.co.dudmesh.usermanager/internal/store"
	"uk.co.dudmesh.usermanager/internal/upload"
)

type rendered struct {
	name string
	data interface{}
}

// recordingRenderer stands in for the html templates and remembers what was rendered.
type recordingRenderer struct {
	mu   sync.Mutex
	last rendered
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.mu.Lock()
	r.last = rendered{name, data}
	r.mu.Unlock()
	_, err := io.WriteString(w, name)
	return err
}

type testConfig struct {
	uploadDir string
}

func (c testConfig) PasswordCost() int       { return bcrypt.MinCost }
func (c testConfig) UploadDirectory() string { return c.uploadDir }

type testApp struct {
	server   *echo.Echo
	renderer *recordingRenderer
	uploads  string
	store    interface{ Close() error }
}

var dbCounter int64

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	n := atomic.AddInt64(&dbCounter, 1)
	repo, err := store.Open("sqlite3", fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", n))
	if err != nil {
		t.Fatalf("opening store: %+v", err)
	}
	t.Cleanup(func() { repo.Close() })

	config := testConfig{filepath.Join(t.TempDir(), "uploads")}
	uploader, err := upload.New(config)
	if err != nil {
		t.Fatalf("creating uploader: %+v", err)
	}

	renderer := &recordingRenderer{}
	server := echo.New()
	server.Renderer = renderer

	Mount(server, &Services{
		Auth:     auth.New(config, repo),
		Users:    user.New(repo),
		Uploader: uploader,
		Store:    repo,
		Sessions: NewSessions(session.NewMemoryStore(), session.NewCodec([]byte("secretkey"), time.Hour, false)),
	})

	return &testApp{server, renderer, config.uploadDir, repo}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return a.do(req, cookies...)
}

func (a *testApp) register(t *testing.T, name, email, password string) {
	t.Helper()
	rec := a.postForm("/register", url.Values{"name": {name}, "email": {email}, "age": {"30"}, "password": {password}})
	if rec.Code != http.StatusFound {
		t.Fatalf("register %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
}

func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := a.postForm("/login", url.Values{"email": {email}, "password": {password}})
	if rec.Code != http.StatusFound {
		t.Fatalf("login %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatalf("login %s: no session cookie", email)
	return nil
}
