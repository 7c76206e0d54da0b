package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"hallticket_backend/internals/constants"
	helper "hallticket_backend/internals/helpers"
	helperOSS "hallticket_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func wantFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != code {
		t.Fatalf("want fiber error %d, got %v", code, err)
	}
}

func TestPutPhoto(t *testing.T) {
	store := helperOSS.NewMemoryStore("https://cdn.test")
	svc := NewUploadService(store, false)

	res, err := svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "My Photo (1).PNG", bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if res.ContentType != "image/png" || res.Bucket != constants.BucketStudentPhotos {
		t.Fatalf("result = %+v", res)
	}
	if !strings.HasPrefix(res.Key, "student-photos/") || !strings.HasSuffix(res.Key, "-My_Photo_1.png") {
		t.Fatalf("key = %s", res.Key)
	}
	if res.FileURL != "https://cdn.test/"+res.Key {
		t.Fatalf("url = %s", res.FileURL)
	}
	if _, ct, ok := store.Get(res.Key); !ok || ct != "image/png" {
		t.Fatal("object not stored")
	}
}

func TestPutPaymentPDF(t *testing.T) {
	svc := NewUploadService(helperOSS.NewMemoryStore("https://cdn.test"), false)
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

	res, err := svc.Put(context.Background(), constants.BucketPaymentProofs, constants.UploadTypePayment, "receipt.pdf", bytes.NewReader(pdf))
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentType != "application/pdf" || !strings.HasSuffix(res.Key, ".pdf") {
		t.Fatalf("result = %+v", res)
	}
}

func TestPutRejectsUnsupportedContent(t *testing.T) {
	svc := NewUploadService(helperOSS.NewMemoryStore("https://cdn.test"), false)

	// ekstensi .jpg tidak menolong: isi file yang diperiksa
	_, err := svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "fake.jpg", strings.NewReader("just some text"))
	wantFiberCode(t, err, fiber.StatusBadRequest)

	_, err = svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "empty.png", bytes.NewReader(nil))
	wantFiberCode(t, err, fiber.StatusBadRequest)
}

func TestPutRejectsOversize(t *testing.T) {
	svc := NewUploadService(helperOSS.NewMemoryStore("https://cdn.test"), false)
	big := append(pngBytes(t), make([]byte, constants.MaxUploadSize)...)

	_, err := svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "big.png", bytes.NewReader(big))
	wantFiberCode(t, err, fiber.StatusBadRequest)
}

func TestPutStorageUnavailable(t *testing.T) {
	store := helperOSS.NewMemoryStore("https://cdn.test")
	store.FailWith = errors.New("dial tcp: connection refused")
	svc := NewUploadService(store, false)

	_, err := svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "a.png", bytes.NewReader(pngBytes(t)))
	if !errors.Is(err, helper.ErrStorage) {
		t.Fatalf("want ErrStorage, got %v", err)
	}
}

func TestPutPhotoAsWebP(t *testing.T) {
	svc := NewUploadService(helperOSS.NewMemoryStore("https://cdn.test"), true)

	res, err := svc.Put(context.Background(), constants.BucketStudentPhotos, constants.UploadTypePhoto, "face.png", bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentType != "image/webp" || !strings.HasSuffix(res.Key, ".webp") {
		t.Fatalf("result = %+v", res)
	}
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	svc := NewUploadService(helperOSS.NewMemoryStore("https://cdn.test"), false)
	_, err := svc.Upload(context.Background(), "avatar", nil)
	wantFiberCode(t, err, fiber.StatusBadRequest)
}
