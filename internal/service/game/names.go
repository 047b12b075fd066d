package game

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims a player name, collapses inner whitespace and
// converts it to NFC so visually equal names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
