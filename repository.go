package bankline

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/repository.go -package=mocks github.com/arhyth/bankline Repository

// Repository is the storage surface behind the four operations. Every
// method acquires one pooled connection before any statement and
// releases it on all exit paths; ErrUnavailable means acquisition
// itself failed and nothing ran.
type Repository interface {
	// Balance reads the stored balance for an account. ErrNotFound
	// when no row matches.
	Balance(ctx context.Context, acctID int64) (decimal.Decimal, error)

	// AdjustBalance adds a signed delta to the stored balance and
	// re-reads it on the same connection. The update is best-effort;
	// the returned value is always the freshly read persisted state.
	AdjustBalance(ctx context.Context, acctID int64, delta decimal.Decimal) (decimal.Decimal, error)

	// DeleteAccount removes the matching row. The bool reports whether
	// exactly one row went away; an error means the statement could
	// not run.
	DeleteAccount(ctx context.Context, acctID int64) (bool, error)

	// CreateCustomer inserts a customer with id max(existing)+1.
	// ErrNoEffect when the insert ran but did not affect one row.
	CreateCustomer(ctx context.Context, req NewCustomerQuery) error
}
