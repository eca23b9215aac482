package storage

import (
	"context"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Storage bundles the read-side tables with a WriteBeginner that opens
// transactional writers. The fields are interfaces so tests can substitute
// the memory backend or mocks.
type Storage struct {
	Accounts     account.Table
	Transactions transaction.Table
	Beginner     WriteBeginner
}

// WriteBeginner opens a Writer whose table operations execute inside a
// single atomic unit until Commit or Rollback.
type WriteBeginner interface {
	Write(ctx context.Context) (*Writer, error)
}

// Write opens a transactional writer on the underlying store.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.Beginner.Write(ctx)
}

// NewStorage connects to Postgres using the environment configuration.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := bob.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	return &Storage{
		Accounts:     account.NewReader(db),
		Transactions: transaction.NewReader(db),
		Beginner:     &pgBeginner{db: db},
	}, nil
}

type pgBeginner struct {
	db bob.DB
}

func (b *pgBeginner) Write(ctx context.Context) (*Writer, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
