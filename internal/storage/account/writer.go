package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const uniqueViolation = "23505"

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

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Account]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()

	query := psql.Insert(
		im.Into("accounts", "id", "display_name", "balance", "role", "enabled", "created_at", "updated_at"),
		im.Values(psql.Arg(id, create.DisplayName, create.StartingBalance, create.Role, true, now, now)),
	)

	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return nil, mapUniqueViolation(err)
	}

	return &Account{
		ID:          id,
		DisplayName: create.DisplayName,
		Balance:     create.StartingBalance,
		Role:        create.Role,
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

func (w *Writer) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	query := psql.Update(
		um.Table("accounts"),
		um.SetCol("display_name").ToArg(displayName),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return mapUniqueViolation(err)
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ledger.ErrDisplayNameTaken
	}
	return err
}
