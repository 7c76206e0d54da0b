package helper

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore: BlobStore in-memory untuk test.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memObject
	base    string

	// FailWith dikembalikan oleh Put bila di-set (simulasi OSS down).
	FailWith error
}

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

func NewMemoryStore(base string) *MemoryStore {
	return &MemoryStore{objects: map[string]memObject{}, base: strings.TrimRight(base, "/")}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.FailWith != nil {
		return ClassifyError("memory put", s.FailWith)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memObject{data: data, contentType: contentType, modified: time.Now()}
	return nil
}

// PutAt menaruh object dengan waktu modifikasi tertentu (test reaper).
func (s *MemoryStore) PutAt(key string, data []byte, modified time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memObject{data: data, modified: modified}
}

func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	return bytes.Clone(o.data), o.contentType, ok
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Object, 0, len(s.objects))
	for k, o := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Object{Key: k, Size: int64(len(o.data)), LastModified: o.modified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, k)
	}
	return nil
}

func (s *MemoryStore) PublicURL(key string) string { return s.base + "/" + key }

func (s *MemoryStore) KeyFromURL(publicURL string) (string, bool) {
	return trimBase(publicURL, s.base)
}
