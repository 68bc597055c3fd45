package utils

import (
	"strings"
	"unicode"
)

var forbiddenKeywords = map[string]bool{
	"DROP":     true,
	"DELETE":   true,
	"UPDATE":   true,
	"ALTER":    true,
	"TRUNCATE": true,
	"INSERT":   true,
	"CREATE":   true,
	"GRANT":    true,
	"REVOKE":   true,
	"COPY":     true,
	"INTO":     true,
	"MERGE":    true,
	"CALL":     true,
	"LOCK":     true,
}

// Functions that write, signal other backends or reach outside the database.
var forbiddenFunctions = map[string]bool{
	"SETVAL":                true,
	"NEXTVAL":               true,
	"PG_TERMINATE_BACKEND":  true,
	"PG_CANCEL_BACKEND":     true,
	"PG_RELOAD_CONF":        true,
	"PG_ROTATE_LOGFILE":     true,
	"PG_SLEEP":              true,
	"PG_SLEEP_FOR":          true,
	"PG_SLEEP_UNTIL":        true,
	"PG_READ_FILE":          true,
	"PG_READ_BINARY_FILE":   true,
	"PG_LS_DIR":             true,
	"PG_ADVISORY_LOCK":      true,
	"PG_ADVISORY_XACT_LOCK": true,
	"SET_CONFIG":            true,
	"LO_IMPORT":             true,
	"LO_EXPORT":             true,
	"LO_UNLINK":             true,
	"LO_CREATE":             true,
	"DBLINK":                true,
	"DBLINK_EXEC":           true,
}

// ValidateSQL reports whether query is a single read-only statement that is
// safe to run for a chart. It is a coarse filter; SQLSource also runs the
// query in a read-only transaction.
func ValidateSQL(query string) bool {
	query = strings.TrimSpace(query)
	query = strings.TrimSuffix(query, ";")
	if query == "" || strings.Contains(query, ";") {
		return false
	}

	words := sqlWords(query)
	if len(words) == 0 || (words[0] != "SELECT" && words[0] != "WITH") {
		return false
	}
	for _, w := range words {
		if forbiddenKeywords[w] || forbiddenFunctions[w] {
			return false
		}
	}
	return true
}

// sqlWords splits query into upper-cased identifier-like tokens, so that a
// column such as updated_at is not mistaken for UPDATE.
func sqlWords(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}
