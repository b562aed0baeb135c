package db

import "strings"

// IsUniqueViolation reports whether the error came from a Postgres unique
// constraint. Pass a constraint name to match one index specifically, e.g.
// the per-user cart and review uniqueness indexes.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
