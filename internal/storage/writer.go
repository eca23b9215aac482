package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Tx is the commit/rollback surface a Writer is bound to. bob.Tx satisfies
// it for the Postgres backend; the memory backend supplies its own.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the write-side tables bound to one transaction. All table
// operations performed through a Writer commit or roll back together.
type Writer struct {
	tx           Tx
	Accounts     account.WriteTable
	Transactions transaction.WriteTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     account.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
	}
}

// NewWriterFromParts assembles a Writer over a non-Postgres backend.
func NewWriterFromParts(tx Tx, accounts account.WriteTable, transactions transaction.WriteTable) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
