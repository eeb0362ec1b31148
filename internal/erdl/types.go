package erdl

import "strings"

// canonicalTypes maps lower-cased type keywords to the database type they
// stand for.
var canonicalTypes = map[string]string{
	"string":    "VARCHAR(255)",
	"text":      "TEXT",
	"int":       "INT",
	"integer":   "INT",
	"bigint":    "BIGINT",
	"float":     "FLOAT",
	"double":    "DOUBLE",
	"decimal":   "DECIMAL(10,2)",
	"bool":      "BOOLEAN",
	"boolean":   "BOOLEAN",
	"date":      "DATE",
	"datetime":  "DATETIME",
	"timestamp": "TIMESTAMP",
	"time":      "TIME",
}

// NormalizeType maps a raw type token to its canonical form.
//
// Known keywords are matched case-insensitively against the whole token.
// Anything else, parameterized or not, is returned upper-cased with its
// parameters intact, so VARCHAR(100) and NUMERIC(12,4) pass through.
func NormalizeType(raw string) string {
	lower := strings.ToLower(raw)

	if canonical, ok := canonicalTypes[lower]; ok {
		return canonical
	}

	// varchar(n) and any other parameterized type keep their parameters.
	return strings.ToUpper(raw)
}
