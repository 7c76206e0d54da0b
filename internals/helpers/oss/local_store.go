package helper

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore menyimpan file di disk (dev / tanpa OSS). File dilayani
// statis oleh Fiber di URLPrefix.
type LocalStore struct {
	Root      string
	BaseURL   string // mis. http://localhost:3000
	URLPrefix string // mis. /uploads
}

func NewLocalStore(root, baseURL, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, ClassifyError("local init", err)
	}
	return &LocalStore{
		Root:      root,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		URLPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(filepath.Clean("/"+key)))
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ClassifyError("local put", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return ClassifyError("local put", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return ClassifyError("local put", err)
	}
	return ClassifyError("local put", f.Close())
}

func (s *LocalStore) List(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, Object{Key: key, Size: info.Size(), LastModified: info.ModTime()})
		return ctx.Err()
	})
	if err != nil {
		return nil, ClassifyError("local list", err)
	}
	return out, nil
}

func (s *LocalStore) Delete(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := os.Remove(s.path(k)); err != nil && !os.IsNotExist(err) {
			return ClassifyError("local delete", err)
		}
	}
	return nil
}

func (s *LocalStore) PublicURL(key string) string {
	return s.BaseURL + s.URLPrefix + "/" + strings.TrimLeft(key, "/")
}

func (s *LocalStore) KeyFromURL(publicURL string) (string, bool) {
	return trimBase(publicURL, s.BaseURL+s.URLPrefix)
}
