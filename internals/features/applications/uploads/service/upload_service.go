package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"hallticket_backend/internals/constants"
	helper "hallticket_backend/internals/helpers"
	helperOSS "hallticket_backend/internals/helpers/oss"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

type UploadResult struct {
	FileURL     string `json:"file_url"`
	Key         string `json:"key"`
	Bucket      string `json:"bucket"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type UploadService struct {
	store       helperOSS.BlobStore
	photoAsWebP bool
	now         func() time.Time
}

func NewUploadService(store helperOSS.BlobStore, photoAsWebP bool) *UploadService {
	return &UploadService{store: store, photoAsWebP: photoAsWebP, now: time.Now}
}

// Upload: jenis menentukan bucket logis; MIME diperiksa dari isi file, bukan header.
func (s *UploadService) Upload(ctx context.Context, kind string, fh *multipart.FileHeader) (*UploadResult, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File is required")
	}
	bucket := constants.BucketForUploadType(kind)
	if bucket == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid file type. Must be either photo or payment.")
	}
	if fh.Size > constants.MaxUploadSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File size exceeds 5MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	return s.Put(ctx, bucket, kind, fh.Filename, src)
}

// Put dipisah dari Upload agar bisa dipakai tanpa multipart.
func (s *UploadService) Put(ctx context.Context, bucket, kind, filename string, r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > constants.MaxUploadSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File size exceeds 5MB limit")
	}
	if len(data) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File is empty")
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	ext, ok := constants.ExtForMIME(contentType)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File type not supported. Please upload JPEG, PNG or PDF.")
	}

	if s.photoAsWebP && kind == constants.UploadTypePhoto && ext != "pdf" {
		webpData, err := helperOSS.ConvertToWebP(bytes.NewReader(data), helperOSS.DefaultPhotoWebP)
		if err != nil {
			log.Printf("[WARN] webp convert gagal, simpan file asli: %v", err)
		} else {
			data, ext, contentType = webpData, "webp", "image/webp"
		}
	}

	base, _ := helper.SplitFilename(filename)
	key := helperOSS.ObjectKey(bucket, s.now(), helper.SanitizeFilename(base), ext)

	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}
	log.Printf("[INFO] uploaded %s (%s, %d bytes)", key, contentType, len(data))

	return &UploadResult{
		FileURL:     s.store.PublicURL(key),
		Key:         key,
		Bucket:      bucket,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}
