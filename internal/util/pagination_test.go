package util

import (
	"errors"
	"testing"
)

func TestParsePageDefaults(t *testing.T) {
	page, err := ParsePage("", "")
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if page.Number != 1 || page.Limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", page.Number, page.Limit)
	}
	if page.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", page.Offset())
	}
}

func TestParsePageInvalid(t *testing.T) {
	for _, tt := range []struct{ page, limit string }{
		{"0", "10"},
		{"-1", "10"},
		{"1", "0"},
		{"abc", "10"},
		{"1", "abc"},
	} {
		if _, err := ParsePage(tt.page, tt.limit); !errors.Is(err, ErrInvalidPage) {
			t.Fatalf("ParsePage(%q, %q) = %v, want ErrInvalidPage", tt.page, tt.limit, err)
		}
	}
}

func TestParsePageOffset(t *testing.T) {
	page, err := ParsePage("3", "7")
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if page.Offset() != 14 {
		t.Fatalf("expected offset 14, got %d", page.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{25, 10, 3},
		{30, 10, 3},
		{31, 10, 4},
		{0, 10, 0},
		{1, 10, 1},
		{9, 3, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
