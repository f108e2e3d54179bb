package validation

import (
	"strings"
	"testing"
)

func TestLinkValidator_ValidateAndNormalize(t *testing.T) {
	v := NewLinkValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{name: "https link", input: "https://example.com/post", expected: "https://example.com/post"},
		{name: "http link", input: "http://example.com", expected: "http://example.com"},
		{name: "surrounding whitespace", input: "  https://example.com/a  ", expected: "https://example.com/a"},
		{name: "missing scheme", input: "example.com/page", expected: "https://example.com/page"},
		{name: "host and port", input: "localhost:8080/x", expected: "https://localhost:8080/x"},
		{name: "query kept", input: "https://example.com/s?q=reel", expected: "https://example.com/s?q=reel"},
		{name: "empty", input: "", shouldError: true},
		{name: "whitespace only", input: "   ", shouldError: true},
		{name: "javascript", input: "javascript:alert(1)", shouldError: true},
		{name: "mailto", input: "mailto:team@example.com", shouldError: true},
		{name: "ftp", input: "ftp://example.com/file", shouldError: true},
		{name: "no host", input: "https://", shouldError: true},
		{name: "markup", input: "https://example.com/<script>", shouldError: true},
		{name: "embedded space", input: "https://exa mple.com", shouldError: true},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", 2048), shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ValidateAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidLink(t *testing.T) {
	if !IsValidLink("https://example.com") {
		t.Error("expected https link to be valid")
	}
	if IsValidLink("javascript:void(0)") {
		t.Error("expected javascript link to be invalid")
	}
}
