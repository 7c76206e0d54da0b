package helper

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Store (Aliyun)
======================================================================= */

type OSSStore struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads"
	publicBase string
}

// NewOSSStoreFromEnv membaca ALI_OSS_ENDPOINT / ACCESS_KEY / SECRET_KEY / BUCKET
// (+ ALI_OSS_SECURITY_TOKEN, ALI_OSS_PUBLIC_BASE opsional).
func NewOSSStoreFromEnv(prefix string) (*OSSStore, error) {
	endpoint := normalizeEndpoint(getEnv("ALI_OSS_ENDPOINT"))
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	base := strings.TrimRight(getEnv("ALI_OSS_PUBLIC_BASE"), "/")
	if base == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		base = "https://" + bucketName + "." + host
	}

	return &OSSStore{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		publicBase: base,
	}, nil
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	return strings.TrimRight(ep, "/")
}

func (s *OSSStore) fullKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if size > 0 {
		opts = append(opts, oss.ContentLength(size))
	}
	if err := s.Bucket.PutObject(s.fullKey(key), r, opts...); err != nil {
		return ClassifyError("oss put", err)
	}
	return nil
}

func (s *OSSStore) List(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	marker := oss.Marker("")
	full := s.fullKey(prefix)
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(full), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, ClassifyError("oss list", err)
		}
		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			key := obj.Key
			if s.Prefix != "" {
				key = strings.TrimPrefix(key, s.Prefix+"/")
			}
			out = append(out, Object{Key: key, Size: obj.Size, LastModified: obj.LastModified})
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}
	return out, nil
}

func (s *OSSStore) Delete(ctx context.Context, keys []string) error {
	for i := 0; i < len(keys); i += 1000 {
		end := i + 1000
		if end > len(keys) {
			end = len(keys)
		}
		batch := make([]string, 0, end-i)
		for _, k := range keys[i:end] {
			batch = append(batch, s.fullKey(k))
		}
		if _, err := s.Bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			return ClassifyError("oss delete", err)
		}
	}
	return nil
}

func (s *OSSStore) PublicURL(key string) string {
	return s.publicBase + "/" + s.fullKey(key)
}

func (s *OSSStore) KeyFromURL(publicURL string) (string, bool) {
	key, ok := trimBase(publicURL, s.publicBase)
	if !ok {
		return "", false
	}
	if s.Prefix != "" {
		if !strings.HasPrefix(key, s.Prefix+"/") {
			return "", false
		}
		key = strings.TrimPrefix(key, s.Prefix+"/")
	}
	return key, true
}
