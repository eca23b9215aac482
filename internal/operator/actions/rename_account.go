package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// RenameAccount changes an account's display name. Existing transactions
// keep the name that was recorded when they were created.
type RenameAccount struct {
	AccountID   uuid.UUID
	DisplayName string

	Result *account.Account
}

func (a *RenameAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}

	if acc.DisplayName == a.DisplayName {
		a.Result = acc
		return nil
	}

	existing, err := writer.Accounts.FindByDisplayName(ctx, a.DisplayName)
	if err != nil && !errors.Is(err, ledger.ErrAccountNotFound) {
		return err
	}
	if err == nil && existing.ID != acc.ID {
		return ledger.ErrDisplayNameTaken
	}

	if err := writer.Accounts.UpdateDisplayName(ctx, acc.ID, a.DisplayName); err != nil {
		return err
	}

	acc.DisplayName = a.DisplayName
	a.Result = acc
	return nil
}
