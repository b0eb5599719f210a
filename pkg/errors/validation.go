package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates a user-supplied identifier (page IDs, group
// names, theme names) for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Stricter shape requirements (page types, destination keys) are layered on
// top by the more specific validators below.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "identifier too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// pageTypeRegex matches valid page type names: lowercase snake_case.
var pageTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidatePageType validates a page type name.
// Page types are lowercase snake_case identifiers such as "weekly" or
// "monthly_overview".
func ValidatePageType(name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}

	if !pageTypeRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid page type: %q (must be lowercase snake_case)", name)
	}

	return nil
}

// destinationKeyRegex matches valid destination keys. Keys are built from
// page types plus serialized parameters, so colons, dashes and dots appear.
var destinationKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9:._-]*$`)

// ValidateDestinationKey validates an explicit destination key.
func ValidateDestinationKey(key string) error {
	if err := ValidateIdentifier(key); err != nil {
		return err
	}

	if !destinationKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid destination key: %q", key)
	}

	return nil
}

// groupNameRegex matches valid navigation group names.
var groupNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateGroupName validates a navigation group name.
func ValidateGroupName(name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}

	if !groupNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid group name: %q", name)
	}

	return nil
}

// ValidatePath validates a file path supplied on the command line or in a
// plan file. It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
