package guard

import (
	"strings"
	"testing"
)

func TestCheckReadOnly_AllowsReadQueries(t *testing.T) {
	queries := []string{
		"SELECT * FROM users",
		"select name from orders",
		"  SELECT id FROM products WHERE active = true",
		"-- comment\nSELECT * FROM events",
		"/* block comment */ SELECT id FROM test",
		"WITH recent AS (SELECT * FROM logs) SELECT count(*) FROM recent",
		"SELECT created_at FROM audit_log ORDER BY created_at DESC LIMIT 10",
	}
	for _, q := range queries {
		if err := CheckReadOnly(q); err != nil {
			t.Errorf("read query should be allowed: %q, got error: %v", q, err)
		}
	}
}

func TestCheckReadOnly_BlocksEveryForbiddenKeyword(t *testing.T) {
	for _, kw := range forbiddenKeywords {
		variants := []string{
			kw + " INTO t VALUES (1)",
			strings.ToLower(kw) + " something",
			"SELECT * FROM t; " + kw + " x",
			"prefix\n" + kw[:1] + strings.ToLower(kw[1:]) + " suffix",
		}
		for _, q := range variants {
			if err := CheckReadOnly(q); err == nil {
				t.Errorf("keyword %s should be blocked in %q", kw, q)
			}
		}
	}
}

func TestCheckReadOnly_KeywordAnywhereInText(t *testing.T) {
	// The guard is syntactic: keywords inside string literals and comments
	// are rejected too. This limitation is part of the contract.
	queries := []string{
		"SELECT 'please INSERT this' FROM t",
		"SELECT * FROM t -- drop the ball",
		"SELECT * FROM t /* update notes */",
	}
	for _, q := range queries {
		if err := CheckReadOnly(q); err == nil {
			t.Errorf("keyword inside literal/comment should still be blocked: %q", q)
		}
	}
}

func TestCheckReadOnly_AllowsKeywordsAsSubstrings(t *testing.T) {
	// Whole-word match only: identifiers containing a keyword pass.
	queries := []string{
		"SELECT inserted_at FROM t",
		"SELECT * FROM updates",
		"SELECT dropped_count FROM stats",
		"SELECT * FROM created_items",
	}
	for _, q := range queries {
		if err := CheckReadOnly(q); err != nil {
			t.Errorf("substring should not trigger the guard: %q, got error: %v", q, err)
		}
	}
}
