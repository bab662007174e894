// Package guard validates SQL before it reaches the warehouse: a read-only
// keyword guard and INFORMATION_SCHEMA path qualification.
package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// forbiddenKeywords are SQL keywords that indicate write or session-control
// operations. Any whole-word occurrence anywhere in the statement is rejected.
var forbiddenKeywords = []string{
	"INSERT",
	"UPDATE",
	"DELETE",
	"CREATE",
	"DROP",
	"ALTER",
	"MERGE",
	"TRUNCATE",
	"GRANT",
	"REVOKE",
	"EXECUTE",
	"BEGIN",
	"COMMIT",
	"ROLLBACK",
}

// forbiddenPattern matches forbidden keywords as standalone words anywhere in
// the text, case-insensitive. This is a syntactic guard, not a parser: it
// also matches keywords inside string literals and comments. That limitation
// is intentional and load-bearing; do not replace it with real SQL parsing.
var forbiddenPattern = regexp.MustCompile(
	`(?i)\b(` + strings.Join(forbiddenKeywords, "|") + `)\b`,
)

// CheckReadOnly returns an error when the statement contains a forbidden
// keyword. The error is a policy rejection, raised before any warehouse call.
func CheckReadOnly(sql string) error {
	if m := forbiddenPattern.FindString(sql); m != "" {
		return fmt.Errorf("query contains forbidden keyword %s: only read-only queries are allowed",
			strings.ToUpper(m))
	}
	return nil
}
