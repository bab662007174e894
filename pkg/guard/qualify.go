package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// infoSchemaRef matches FROM [dataset.]INFORMATION_SCHEMA.TABLES references.
// Backtick-quoted references do not match, which makes the rewrite idempotent:
// an already-qualified `project.dataset.INFORMATION_SCHEMA.TABLES` is left
// untouched.
var infoSchemaRef = regexp.MustCompile(
	`(?i)\bFROM\s+(?:([A-Za-z_][A-Za-z0-9_]*)\.)?INFORMATION_SCHEMA\.TABLES\b`,
)

// QualifyInformationSchema rewrites every unquoted
// FROM dataset.INFORMATION_SCHEMA.TABLES reference to the fully qualified
// backtick-quoted form using projectID. A reference with no dataset qualifier
// is a usage error: the caller must name a dataset rather than have one
// guessed for them.
func QualifyInformationSchema(sql, projectID string) (string, error) {
	if !strings.Contains(strings.ToUpper(sql), "INFORMATION_SCHEMA") {
		return sql, nil
	}

	var usageErr error
	rewritten := infoSchemaRef.ReplaceAllStringFunc(sql, func(match string) string {
		sub := infoSchemaRef.FindStringSubmatch(match)
		if sub[1] == "" {
			usageErr = fmt.Errorf(
				"INFORMATION_SCHEMA queries must specify a dataset, e.g. FROM dataset.INFORMATION_SCHEMA.TABLES")
			return match
		}
		return fmt.Sprintf("FROM `%s.%s.INFORMATION_SCHEMA.TABLES`", projectID, sub[1])
	})
	if usageErr != nil {
		return "", usageErr
	}
	return rewritten, nil
}
