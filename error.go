package bankline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no database connection could be acquired
	// from the pool. No statement has run when it is returned.
	ErrUnavailable = errors.New("connection pool unavailable")

	// ErrNoEffect means a statement executed cleanly but affected a
	// row count other than the single row expected.
	ErrNoEffect = errors.New("statement had no effect")
)

type ErrNotFound struct {
	AccountID int64 `json:"account_id"`
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("account %d not found", e.AccountID)
}
