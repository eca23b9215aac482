package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var columns = []any{"id", "sender_id", "receiver_display_name", "amount", "description", "status", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Reader) ListBySender(ctx context.Context, senderID uuid.UUID) ([]*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("sender_id").EQ(psql.Arg(senderID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return toPointers(rows), nil
}

func (r *Reader) ListByReceiverDisplayName(ctx context.Context, displayName string) ([]*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("receiver_display_name").EQ(psql.Arg(displayName))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return toPointers(rows), nil
}

func toPointers(rows []Transaction) []*Transaction {
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}
