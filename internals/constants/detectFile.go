package constants

import "strings"

// Jenis upload yang diterima endpoint /upload (field multipart "type").
const (
	UploadTypePhoto   = "photo"
	UploadTypePayment = "payment"
)

// Bucket logis di blob store.
const (
	BucketStudentPhotos = "student-photos"
	BucketPaymentProofs = "payment-proofs"
)

const MaxUploadSize = int64(5 * 1024 * 1024) // 5MB

var allowedUploadMIMEs = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
}

// BucketForUploadType: "" jika type tidak dikenal.
func BucketForUploadType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case UploadTypePhoto:
		return BucketStudentPhotos
	case UploadTypePayment:
		return BucketPaymentProofs
	default:
		return ""
	}
}

// ExtForMIME mengembalikan ekstensi untuk MIME yang diizinkan.
func ExtForMIME(mime string) (string, bool) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	ext, ok := allowedUploadMIMEs[mime]
	return ext, ok
}

func AllBuckets() []string {
	return []string{BucketStudentPhotos, BucketPaymentProofs}
}
