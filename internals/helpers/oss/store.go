package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	appHelper "hallticket_backend/internals/helpers"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Object adalah entri hasil List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// BlobStore: penyimpanan file upload. Bucket logis (student-photos,
// payment-proofs) menjadi prefix key.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Delete(ctx context.Context, keys []string) error
	PublicURL(key string) string
	KeyFromURL(publicURL string) (string, bool)
}

// ClassifyError memetakan error driver ke ErrStorage / ErrStoragePermission.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, appHelper.ErrStorage) || errors.Is(err, appHelper.ErrStoragePermission) {
		return err
	}

	var se oss.ServiceError
	if errors.As(err, &se) {
		if se.StatusCode == 403 {
			return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStoragePermission, err)
		}
		return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStorage, err)
	}
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStoragePermission, err)
	}

	var (
		dnsErr *net.DNSError
		opErr  *net.OpError
		urlErr *url.Error
	)
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStorage, err)
	}

	low := strings.ToLower(err.Error())
	switch {
	case strings.Contains(low, "permission") || strings.Contains(low, "accessdenied"):
		return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStoragePermission, err)
	case strings.Contains(low, "no such host") || strings.Contains(low, "connection refused"):
		return fmt.Errorf("%s: %w: %v", op, appHelper.ErrStorage, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ObjectKey: "<bucket>/<unix-millis>-<name>.<ext>"
func ObjectKey(bucket string, now time.Time, name, ext string) string {
	return fmt.Sprintf("%s/%d-%s.%s", strings.Trim(bucket, "/"), now.UnixMilli(), name, ext)
}

func trimBase(publicURL, base string) (string, bool) {
	if base == "" || !strings.HasPrefix(publicURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(strings.TrimPrefix(publicURL, base), "/")
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	return key, key != ""
}
