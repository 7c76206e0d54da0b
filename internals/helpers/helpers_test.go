package helper

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		page, limit     int
		wantPage, wantL int
		wantOffset      int
	}{
		{0, 0, 1, 20, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, 100, 100},
		{-1, -5, 1, 20, 0},
	}
	for _, tc := range cases {
		p := NormalizePaging(tc.page, tc.limit, 20, 100)
		if p.Page != tc.wantPage || p.Limit != tc.wantL || p.Offset != tc.wantOffset {
			t.Errorf("NormalizePaging(%d,%d) = %+v", tc.page, tc.limit, p)
		}
	}
}

func TestNormalizePagingHugePage(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 100, MaxPagingOffset} {
		p := NormalizePaging(page, 100, 20, 100)
		if p.Offset < 0 || p.Offset > MaxPagingOffset {
			t.Fatalf("NormalizePaging(%d) offset = %d", page, p.Offset)
		}
		if p.Offset != (p.Page-1)*p.Limit {
			t.Fatalf("page/offset mismatch: %+v", p)
		}
	}

	// limit 0 (tanpa default) tidak boleh panic
	if p := NormalizePaging(math.MaxInt, 0, 0, 0); p.Offset != 0 {
		t.Fatalf("zero limit: %+v", p)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, Limit: 20})
	if p.Pages != 3 || !p.HasNext || !p.HasPrev || p.Total != 45 {
		t.Fatalf("pagination = %+v", p)
	}
	last := BuildPagination(45, Paging{Page: 3, Limit: 20})
	if last.HasNext {
		t.Fatal("last page must not have next")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo.jpg",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\pic.png`:  "pic.png",
		"Fotó Ñame (2).jpeg":   "Foto_Name_2_.jpeg",
		"   ":                  "file",
		"__.hidden":            "hidden",
		"résumé final.pdf":     "resume_final.pdf",
		"a b\tc":               "a_b_c",
		"😀😀":                   "file",
		"name-with-dash_ok.v2": "name-with-dash_ok.v2",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitFilename(t *testing.T) {
	base, ext := SplitFilename("dir/My.Photo.JPG")
	if base != "My.Photo" || ext != "jpg" {
		t.Fatalf("got %q %q", base, ext)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{pgErr, true},
		{fmt.Errorf("insert: %w", pgErr), true},
		{&pgconn.PgError{Code: "23503"}, false},
		{gorm.ErrDuplicatedKey, true},
		{ErrDuplicate, true},
		{errors.New("ERROR: duplicate key value (SQLSTATE 23505)"), true},
		{errors.New("boom"), false},
	}
	for i, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("case %d (%v): got %v want %v", i, tc.err, got, tc.want)
		}
	}
}

func TestNormalizeDBError(t *testing.T) {
	if NormalizeDBError(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	if !errors.Is(NormalizeDBError(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Fatal("record not found must map to ErrNotFound")
	}
	err := NormalizeDBError(&pgconn.PgError{Code: "23505"})
	var pgErr *pgconn.PgError
	if !errors.Is(err, ErrDuplicate) || !errors.As(err, &pgErr) {
		t.Fatalf("duplicate must wrap both: %v", err)
	}
	other := errors.New("other")
	if NormalizeDBError(other) != other {
		t.Fatal("other errors pass through")
	}
}
