package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaskSecret hides all but the first rune of a secret,
// keeping the visible length capped so long inputs stay readable
func MaskSecret(secret string) string {
	n := utf8.RuneCountInString(secret)
	if n == 0 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(secret)
	if n == 1 {
		return "*"
	}
	return string(first) + strings.Repeat("*", min(n-1, 15))
}

// FormatWord renders a 32-bit word as fixed width hex
func FormatWord(w uint32) string {
	return fmt.Sprintf("%08x", w)
}

// FormatBytesHex renders a byte slice as space separated hex pairs,
// truncated to limit bytes
func FormatBytesHex(b []byte, limit int) string {
	var sb strings.Builder
	for i, c := range b {
		if i == limit {
			fmt.Fprintf(&sb, " … (+%d)", len(b)-limit)
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
