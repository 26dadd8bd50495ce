package postgres

import (
	"database/sql"
	"errors"
	"strings"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isConnectionFailure separates backend outages from query bugs so only the
// former are marked unavailable.
func isConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrConnDone) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"i/o timeout",
		"no such host",
		"too many clients",
		"the database system is starting up",
		"the database system is shutting down",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
