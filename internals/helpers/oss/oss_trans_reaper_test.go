package helper

import (
	"context"
	"errors"
	"net"
	"sort"
	"testing"
	"time"

	appHelper "hallticket_backend/internals/helpers"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func TestRunOrphanReaper(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-40 * 24 * time.Hour)

	newStore := func() *MemoryStore {
		s := NewMemoryStore("https://cdn.test")
		s.PutAt("student-photos/1-used.jpg", []byte("a"), old)
		s.PutAt("student-photos/2-orphan.jpg", []byte("b"), old)
		s.PutAt("student-photos/3-fresh.jpg", []byte("c"), now.Add(-time.Hour))
		s.PutAt("payment-proofs/4-orphan.pdf", []byte("d"), old)
		s.PutAt("other/5-untouched.pdf", []byte("e"), old)
		return s
	}
	referenced := func(ctx context.Context) ([]string, error) {
		return []string{"https://cdn.test/student-photos/1-used.jpg", "https://elsewhere/x.jpg"}, nil
	}
	prefixes := []string{"student-photos/", "payment-proofs/"}
	want := []string{"payment-proofs/4-orphan.pdf", "student-photos/2-orphan.jpg"}

	t.Run("dry run keeps objects", func(t *testing.T) {
		s := newStore()
		got, err := RunOrphanReaper(context.Background(), s, referenced, prefixes, 30*24*time.Hour, true, now)
		if err != nil {
			t.Fatalf("reaper: %v", err)
		}
		sort.Strings(got)
		assertKeys(t, got, want)
		if _, _, ok := s.Get("student-photos/2-orphan.jpg"); !ok {
			t.Fatal("dry run must not delete")
		}
	})

	t.Run("deletes orphans only", func(t *testing.T) {
		s := newStore()
		got, err := RunOrphanReaper(context.Background(), s, referenced, prefixes, 30*24*time.Hour, false, now)
		if err != nil {
			t.Fatalf("reaper: %v", err)
		}
		sort.Strings(got)
		assertKeys(t, got, want)
		for _, k := range want {
			if _, _, ok := s.Get(k); ok {
				t.Errorf("%s should be deleted", k)
			}
		}
		for _, k := range []string{"student-photos/1-used.jpg", "student-photos/3-fresh.jpg", "other/5-untouched.pdf"} {
			if _, _, ok := s.Get(k); !ok {
				t.Errorf("%s should be kept", k)
			}
		}
	})
}

func assertKeys(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "oss.example"}, appHelper.ErrStorage},
		{"service 403", oss403(), appHelper.ErrStoragePermission},
		{"text permission", errors.New("open /x: permission denied"), appHelper.ErrStoragePermission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError("put", tt.err); !errors.Is(got, tt.want) {
				t.Fatalf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
	if ClassifyError("put", nil) != nil {
		t.Fatal("nil stays nil")
	}
}

func TestObjectKeyAndPublicURL(t *testing.T) {
	now := time.UnixMilli(1714560000123)
	key := ObjectKey("student-photos", now, "my_photo", "jpg")
	if key != "student-photos/1714560000123-my_photo.jpg" {
		t.Fatalf("key = %q", key)
	}
	s := NewMemoryStore("https://cdn.test/")
	u := s.PublicURL(key)
	if u != "https://cdn.test/"+key {
		t.Fatalf("url = %q", u)
	}
	back, ok := s.KeyFromURL(u + "?v=1")
	if !ok || back != key {
		t.Fatalf("KeyFromURL = %q, %v", back, ok)
	}
}

func oss403() error {
	return oss.ServiceError{Code: "AccessDenied", Message: "denied", StatusCode: 403}
}
