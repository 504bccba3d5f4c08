package normalization

import (
	"strings"
)

// ParseInputString lowercases and trims user-supplied identity fields
// (emails, verification codes) before they touch the database.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ParseSymbol trims and uppercases a ticker symbol the way it is stored
// on preference rows.
func ParseSymbol(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
