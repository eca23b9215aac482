package actions

import (
	"bytes"
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// lockAccountPair locks both account rows FOR UPDATE in ascending id order,
// so two transfers touching the same accounts from opposite directions
// cannot deadlock. Returns the locked rows keyed to the argument order.
func lockAccountPair(ctx context.Context, writer *storage.Writer, firstID, secondID uuid.UUID) (*account.Account, *account.Account, error) {
	lo, hi := firstID, secondID
	if bytes.Compare(hi.Bytes(), lo.Bytes()) < 0 {
		lo, hi = hi, lo
	}

	loAccount, err := writer.Accounts.FindByIDForUpdate(ctx, lo)
	if err != nil {
		return nil, nil, err
	}
	hiAccount, err := writer.Accounts.FindByIDForUpdate(ctx, hi)
	if err != nil {
		return nil, nil, err
	}

	if lo == firstID {
		return loAccount, hiAccount, nil
	}
	return hiAccount, loAccount, nil
}
