package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a user-supplied identifier (factory names, cell
// names, port names) for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeConfiguration, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeConfiguration, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeConfiguration, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// factoryNameRegex matches valid component factory names. Factories follow
// lower_snake_case so their names survive as file stems and URL segments.
var factoryNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateFactoryName validates a component factory name.
func ValidateFactoryName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !factoryNameRegex.MatchString(name) {
		return New(ErrCodeConfiguration, "invalid factory name: %q", name)
	}

	return nil
}

// portNameRegex matches valid port names: a short alphanumeric identifier,
// optionally with underscores, as produced by builders and auto-renaming.
var portNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_]*$`)

// ValidatePortName validates a port name.
func ValidatePortName(name string) error {
	if name == "" {
		return New(ErrCodePortInvalid, "port name cannot be empty")
	}

	if !portNameRegex.MatchString(name) {
		return New(ErrCodePortInvalid, "invalid port name: %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeConfiguration, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeConfiguration, "URL must use http or https scheme")
	}

	return nil
}
