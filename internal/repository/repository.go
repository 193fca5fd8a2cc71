package repository

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The service layer does a read-based duplicate pre-check, but
// concurrent requests can still race between the check and the insert; the
// database constraint is the backstop and gets translated to the same
// Conflict error kind.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
