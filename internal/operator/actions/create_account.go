package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccount registers a new account with its starting balance. The
// display name must be unique across all accounts.
type CreateAccount struct {
	DisplayName     string
	Role            string
	StartingBalance decimal.Decimal

	Result *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	taken, err := writer.Accounts.ExistsByDisplayName(ctx, c.DisplayName)
	if err != nil {
		return err
	}
	if taken {
		return ledger.ErrDisplayNameTaken
	}

	created, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		DisplayName:     c.DisplayName,
		Role:            c.Role,
		StartingBalance: c.StartingBalance,
	})
	if err != nil {
		return err
	}

	c.Result = created
	return nil
}
