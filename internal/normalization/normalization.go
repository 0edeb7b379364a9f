package normalization

import (
	"strings"
)

// NormalizeName is the single identity key for ingredient, pantry and
// shopping-list name matching. Every lookup that treats names as
// case-insensitive goes through here.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeUnit canonicalizes a free-text unit string. Empty or missing
// units collapse to nil.
func NormalizeUnit(unit *string) *string {
	if unit == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*unit))
	if normalized == "" {
		return nil
	}
	return &normalized
}

// Commensurable reports whether two quantities can be summed or subtracted.
// A missing unit on either side is a wildcard match; two present units must
// be equal after normalization. Callers must skip incommensurable pairs,
// never sum them.
func Commensurable(a, b *string) bool {
	na := NormalizeUnit(a)
	nb := NormalizeUnit(b)
	if na == nil || nb == nil {
		return true
	}
	return *na == *nb
}
