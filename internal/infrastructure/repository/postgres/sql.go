package postgres

import (
	"database/sql"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// positiveID stores ids <= 0 as NULL so unset foreign keys stay unset.
func positiveID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// optionalText trims s and stores blank values as NULL.
func optionalText(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
