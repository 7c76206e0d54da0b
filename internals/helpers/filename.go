package helper

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.-]+`)

// SanitizeFilename membuang diakritik lalu mengganti karakter selain [a-zA-Z0-9.-] dengan "_".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	safe := reUnsafeFilename.ReplaceAllString(b.String(), "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		return "file"
	}
	if len(safe) > 80 {
		safe = safe[:80]
	}
	return safe
}

// SplitFilename memisah basename dan ekstensi (lowercase, tanpa titik).
func SplitFilename(name string) (base, ext string) {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	base = strings.TrimSuffix(name, filepath.Ext(name))
	return base, ext
}
