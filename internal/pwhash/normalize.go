package pwhash

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidData}, args...)...)
}

func normalizeBytes(password []byte) ([]byte, error) {
	if !utf8.Valid(password) {
		return nil, invalid("password is not valid UTF-8")
	}
	return normalizeString(string(password))
}

// normalizeString lowercases password and checks the resulting length.
// A Caser keeps state between calls, so each password gets its own.
func normalizeString(password string) ([]byte, error) {
	lower := cases.Lower(language.Und).String(password)
	switch n := len(lower); {
	case n == 0:
		return nil, invalid("empty password")
	case n > MaxPasswordLen:
		return nil, invalid("password is %d bytes, max %d", n, MaxPasswordLen)
	}
	return []byte(lower), nil
}
