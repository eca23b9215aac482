package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()

	query := psql.Insert(
		im.Into("transactions", "id", "sender_id", "receiver_display_name", "amount", "description", "status", "created_at"),
		im.Values(psql.Arg(id, create.SenderID, create.ReceiverDisplayName, create.Amount, create.Description, create.Status, now)),
	)

	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return nil, err
	}

	return &Transaction{
		ID:                  id,
		SenderID:            create.SenderID,
		ReceiverDisplayName: create.ReceiverDisplayName,
		Amount:              create.Amount,
		Description:         create.Description,
		Status:              create.Status,
		CreatedAt:           now,
	}, nil
}

func (w *Writer) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := psql.Update(
		um.Table("transactions"),
		um.SetCol("status").ToArg(status),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
