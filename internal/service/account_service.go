package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Every account opens with the same balance; the auth gateway owns
// credentials, this service only owns the ledger side of registration.
var startingBalance = decimal.RequireFromString("1000.00")

const defaultRole = "USER"

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op *operator.OperatorDelegator) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount registers a new account with the fixed starting balance and
// the USER role.
func (s *AccountService) CreateAccount(ctx context.Context, displayName string) (*Account, error) {
	action := &actions.CreateAccount{
		DisplayName:     displayName,
		Role:            defaultRole,
		StartingBalance: startingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return accountFromStorage(action.Result), nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return accountFromStorage(row), nil
}

// AccountExists reports whether a display name is registered.
func (s *AccountService) AccountExists(ctx context.Context, displayName string) (bool, error) {
	return s.storage.Accounts.ExistsByDisplayName(ctx, displayName)
}

// RenameAccount changes the caller's display name. Transaction history keeps
// the names recorded at transfer time.
func (s *AccountService) RenameAccount(ctx context.Context, id uuid.UUID, displayName string) (*Account, error) {
	action := &actions.RenameAccount{
		AccountID:   id,
		DisplayName: displayName,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return accountFromStorage(action.Result), nil
}

func accountFromStorage(row *account.Account) *Account {
	return &Account{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Balance:     row.Balance,
		Role:        row.Role,
		Enabled:     row.Enabled,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
