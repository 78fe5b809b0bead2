package errors

import (
	"strings"
	"testing"
)

func TestValidateCopiesPerPage(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		limit   int
		wantErr bool
	}{
		{"one", 1, 3, false},
		{"two", 2, 3, false},
		{"three", 3, 3, false},
		{"zero", 0, 3, true},
		{"negative", -1, 3, true},
		{"five", 5, 3, true},
		{"three with cap two", 3, 2, true},
		{"two with cap two", 2, 2, false},
		{"bogus limit falls back to max", 3, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCopiesPerPage(tt.n, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCopiesPerPage(%d, %d) error = %v, wantErr %v", tt.n, tt.limit, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCopies) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidCopies)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/cover.jpg", false},
		{"http://localhost:8080/a.png", false},
		{"", true},
		{"ftp://example.com/a.png", true},
		{"file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "art/front.jpg", false},
		{"absolute", "/tmp/front.jpg", false},
		{"empty", "", true},
		{"control char", "front\x00.jpg", true},
		{"too long", strings.Repeat("a", 1025), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
