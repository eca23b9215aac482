package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record. Balance is only ever mutated inside
// a storage.Writer holding the account's row lock.
type Account struct {
	ID          uuid.UUID       `db:"id"`
	DisplayName string          `db:"display_name"`
	Balance     decimal.Decimal `db:"balance"`
	Role        string          `db:"role"`
	Enabled     bool            `db:"enabled"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	DisplayName     string
	Role            string
	StartingBalance decimal.Decimal
}

// Table defines the read-side interface for account storage operations.
// This abstraction allows swapping the implementation without changing callers.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByDisplayName(ctx context.Context, displayName string) (*Account, error)
	ExistsByDisplayName(ctx context.Context, displayName string) (bool, error)
}

// WriteTable defines the write-side interface, bound to a transaction.
// FindByIDForUpdate holds the row lock until commit or rollback.
type WriteTable interface {
	Table
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
}
