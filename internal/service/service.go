package service

import (
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transfer *TransferService
	Account  *AccountService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator) *Service {
	return &Service{
		Transfer: NewTransferService(store, op),
		Account:  NewAccountService(store, op),
	}
}
