package erdl

import (
	"strings"
	"unicode/utf8"
)

// maxKeyNameLength is the longest "...id" column name still treated as a
// primary key.
const maxKeyNameLength = 10

// IsPrimaryKey guesses whether a column is a primary key from its name and
// normalized type. Names like "id" or "CustomerID" qualify, as do
// AUTO_INCREMENT types.
func IsPrimaryKey(name, normalizedType string) bool {
	lower := strings.ToLower(name)
	return lower == "id" ||
		(strings.HasSuffix(lower, "id") && utf8.RuneCountInString(lower) <= maxKeyNameLength) ||
		strings.Contains(normalizedType, "AUTO_INCREMENT")
}

// IsForeignKey guesses whether a column references another table. Any name
// ending in "id" other than "id" itself qualifies.
//
// The check is independent of IsPrimaryKey: "OrderID" is reported as both.
func IsForeignKey(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "id") && lower != "id" && utf8.RuneCountInString(lower) > 2
}

// IsRequired reports whether a column of the normalized type must hold a
// value. Types mentioning null in any form, NOT NULL included, are optional.
func IsRequired(normalizedType string) bool {
	return !strings.Contains(strings.ToLower(normalizedType), "null")
}
