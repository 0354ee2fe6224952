package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PublicPrefix is where the upload directory is mounted by the http server.
const PublicPrefix = "/uploads"

const maxCollisions = 1000

type Config interface {
	UploadDirectory() string
}

type store struct {
	dir string
	now func() time.Time
}

func New(config Config) (*store, error) {
	dir := config.UploadDirectory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &store{dir: dir, now: time.Now}, nil
}

func (s *store) Dir() string {
	return s.dir
}

// Save stores the file as <unix millis><original extension> and returns its public path.
// A name already taken within the same millisecond moves on to the next millisecond.
func (s *store) Save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(filepath.Base(header.Filename))
	stamp := s.now().UnixMilli()

	for i := 0; i < maxCollisions; i++ {
		name := strconv.FormatInt(stamp+int64(i), 10) + ext
		dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("creating upload file: %w", err)
		}

		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			os.Remove(dst.Name())
			return "", fmt.Errorf("writing upload file: %w", err)
		}
		if err := dst.Close(); err != nil {
			return "", fmt.Errorf("closing upload file: %w", err)
		}
		return path.Join(PublicPrefix, name), nil
	}

	return "", fmt.Errorf("no free upload name after %d attempts", maxCollisions)
}

// Remove deletes a file previously returned by Save. Anything outside the upload directory is refused.
func (s *store) Remove(ref string) error {
	name := strings.TrimPrefix(ref, PublicPrefix+"/")
	if name == ref || name == "" || name != filepath.Base(name) {
		return fmt.Errorf("not an upload: %s", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing upload file: %w", err)
	}
	return nil
}
