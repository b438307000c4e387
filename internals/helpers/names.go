package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims, collapses inner whitespace and composes Hangul to NFC so that
// "홍길동" typed on different keyboards compares equal in uniqueness checks.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
