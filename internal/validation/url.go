package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkValidator checks the links attached to deck items before they are
// shown.
type LinkValidator struct {
	MaxLength int
}

func NewLinkValidator() *LinkValidator {
	return &LinkValidator{MaxLength: 2048}
}

// ValidateAndNormalize returns the link in canonical form. Links without a
// scheme are assumed to be https; any scheme other than http or https is
// rejected.
func (v *LinkValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'` ") {
		return "", fmt.Errorf("URL contains invalid characters")
	}

	if !strings.Contains(input, "://") && !hasScheme(input) {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL must use http or https protocol")
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}

	return parsed.String(), nil
}

// hasScheme spots opaque forms such as "javascript:alert(1)" or
// "mailto:x@y" that carry a scheme without "://". A host:port pair is not a
// scheme.
func hasScheme(input string) bool {
	i := strings.Index(input, ":")
	if i <= 0 {
		return false
	}
	rest := input[i+1:]
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return false
	}
	for _, r := range input[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// IsValidLink reports whether link passes ValidateAndNormalize.
func IsValidLink(link string) bool {
	_, err := NewLinkValidator().ValidateAndNormalize(link)
	return err == nil
}
