package domain

import (
	"fmt"
	"strings"
)

// Codeable characters are CJK Unified Ideographs; everything else in a
// phrase (Latin, digits, punctuation) is carried in the stored phrase but
// never encoded.
const (
	codeableLo = 0x4E00
	codeableHi = 0x9FFF
)

// IsCodeable reports whether the rune belongs to the encodable script range.
func IsCodeable(r rune) bool {
	return r >= codeableLo && r <= codeableHi
}

// CodeableChars strips a phrase down to its codeable characters, preserving
// order. Returns "" when the phrase has none.
func CodeableChars(phrase string) string {
	var b strings.Builder
	for _, r := range phrase {
		if IsCodeable(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeManualCode prepares a user-supplied code for storage:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses internal whitespace runs into single spaces
//
// After lowercasing, anything but 'a'..'z' and spaces is rejected with
// ErrInvalidCode.
func NormalizeManualCode(raw string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCode)
	}
	for _, r := range code {
		if r != ' ' && (r < 'a' || r > 'z') {
			return "", fmt.Errorf("%w: %q may contain only lowercase letters and spaces", ErrInvalidCode, raw)
		}
	}
	return strings.Join(strings.Fields(code), " "), nil
}
