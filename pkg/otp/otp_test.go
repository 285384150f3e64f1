package otp

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	src := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5})

	g := NewGenerator(src, 6)
	code, err := g.Generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if code != "012345" {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestGenerateDiscardsBiasedBytes(t *testing.T) {
	// 250..255 would make digits 0-5 slightly more likely; they must be
	// skipped, not folded.
	src := bytes.NewReader([]byte{250, 255, 7, 0, 1, 2, 3, 4})

	g := NewGenerator(src, 6)
	code, err := g.Generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if code != "701234" {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestGenerateLengthAndDigits(t *testing.T) {
	g := NewGenerator(nil, 6)

	code, err := g.Generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	if strings.Trim(code, "0123456789") != "" {
		t.Fatalf("non-digit characters in code %q", code)
	}
}

func TestGenerateClampsBadLength(t *testing.T) {
	g := NewGenerator(nil, 99)
	code, err := g.Generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected clamped length 6, got %d", len(code))
	}
}

func TestGenerateExhaustedSource(t *testing.T) {
	g := NewGenerator(bytes.NewReader([]byte{1, 2}), 6)
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected error from short randomness source")
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		stored, submitted string
		want              bool
	}{
		{"123456", "123456", true},
		{"123456", "123457", false},
		{"123456", "12345", false},
		{"", "", false},
		{"", "123456", false},
	}

	for _, tc := range cases {
		if got := Equal(tc.stored, tc.submitted); got != tc.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tc.stored, tc.submitted, got, tc.want)
		}
	}
}
