// Package memory is an in-process backend for the storage interfaces. A
// writer takes the store-wide lock for its whole lifetime and keeps a
// snapshot for rollback, so every write batch is atomic and fully isolated.
// It backs the engine and service tests and doubles as an embedded store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Store struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]*account.Account
	byName       map[string]uuid.UUID
	transactions map[uuid.UUID]*transaction.Transaction
	// txOrder records insertion order, newest last. Insertion is
	// chronological, so iterating it backwards yields creation time
	// descending with a stable tie order.
	txOrder []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]*account.Account),
		byName:       make(map[string]uuid.UUID),
		transactions: make(map[uuid.UUID]*transaction.Transaction),
	}
}

// Storage wraps the store in the standard Storage bundle.
func (s *Store) Storage() *storage.Storage {
	return &storage.Storage{
		Accounts:     &accountReader{store: s},
		Transactions: &transactionReader{store: s},
		Beginner:     s,
	}
}

// Write locks the store exclusively until Commit or Rollback. Writers are
// strictly serialized; reads block while one is open.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	s.mu.Lock()
	tx := &memTx{store: s, snap: s.snapshot()}
	return storage.NewWriterFromParts(
		tx,
		&accountWriter{store: s},
		&transactionWriter{store: s},
	), nil
}

type snapshot struct {
	accounts     map[uuid.UUID]*account.Account
	byName       map[string]uuid.UUID
	transactions map[uuid.UUID]*transaction.Transaction
	txOrder      []uuid.UUID
}

func (s *Store) snapshot() *snapshot {
	snap := &snapshot{
		accounts:     make(map[uuid.UUID]*account.Account, len(s.accounts)),
		byName:       make(map[string]uuid.UUID, len(s.byName)),
		transactions: make(map[uuid.UUID]*transaction.Transaction, len(s.transactions)),
		txOrder:      append([]uuid.UUID(nil), s.txOrder...),
	}
	for id, acc := range s.accounts {
		copied := *acc
		snap.accounts[id] = &copied
	}
	for name, id := range s.byName {
		snap.byName[name] = id
	}
	for id, txn := range s.transactions {
		copied := *txn
		snap.transactions[id] = &copied
	}
	return snap
}

func (s *Store) restore(snap *snapshot) {
	s.accounts = snap.accounts
	s.byName = snap.byName
	s.transactions = snap.transactions
	s.txOrder = snap.txOrder
}

type memTx struct {
	store *Store
	snap  *snapshot
	done  bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.snap = nil
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.restore(t.snap)
	t.snap = nil
	t.store.mu.Unlock()
	return nil
}

// -- unlocked internals, caller must hold the appropriate lock --

func (s *Store) findAccountByID(id uuid.UUID) (*account.Account, error) {
	acc, ok := s.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (s *Store) findAccountByDisplayName(displayName string) (*account.Account, error) {
	id, ok := s.byName[displayName]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return s.findAccountByID(id)
}

func (s *Store) findTransactionByID(id uuid.UUID) (*transaction.Transaction, error) {
	txn, ok := s.transactions[id]
	if !ok {
		return nil, ledger.ErrTransactionNotFound
	}
	copied := *txn
	return &copied, nil
}

func (s *Store) listTransactions(match func(*transaction.Transaction) bool) []*transaction.Transaction {
	var result []*transaction.Transaction
	for i := len(s.txOrder) - 1; i >= 0; i-- {
		txn := s.transactions[s.txOrder[i]]
		if match(txn) {
			copied := *txn
			result = append(result, &copied)
		}
	}
	return result
}

// -- read-side tables (take the read lock) --

type accountReader struct {
	store *Store
}

func (r *accountReader) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.findAccountByID(id)
}

func (r *accountReader) FindByDisplayName(ctx context.Context, displayName string) (*account.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.findAccountByDisplayName(displayName)
}

func (r *accountReader) ExistsByDisplayName(ctx context.Context, displayName string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.byName[displayName]
	return ok, nil
}

type transactionReader struct {
	store *Store
}

func (r *transactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.findTransactionByID(id)
}

func (r *transactionReader) ListBySender(ctx context.Context, senderID uuid.UUID) ([]*transaction.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listTransactions(func(t *transaction.Transaction) bool {
		return t.SenderID == senderID
	}), nil
}

func (r *transactionReader) ListByReceiverDisplayName(ctx context.Context, displayName string) ([]*transaction.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listTransactions(func(t *transaction.Transaction) bool {
		return t.ReceiverDisplayName == displayName
	}), nil
}

// -- write-side tables (lock already held by the writer) --

type accountWriter struct {
	store *Store
}

func (w *accountWriter) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return w.store.findAccountByID(id)
}

func (w *accountWriter) FindByDisplayName(ctx context.Context, displayName string) (*account.Account, error) {
	return w.store.findAccountByDisplayName(displayName)
}

func (w *accountWriter) ExistsByDisplayName(ctx context.Context, displayName string) (bool, error) {
	_, ok := w.store.byName[displayName]
	return ok, nil
}

func (w *accountWriter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	// The writer already holds the store-wide lock, which is stronger than
	// a per-row lock.
	return w.store.findAccountByID(id)
}

func (w *accountWriter) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	if _, taken := w.store.byName[create.DisplayName]; taken {
		return nil, ledger.ErrDisplayNameTaken
	}

	now := time.Now().UTC()
	acc := &account.Account{
		ID:          uuid.Must(uuid.NewV4()),
		DisplayName: create.DisplayName,
		Balance:     create.StartingBalance,
		Role:        create.Role,
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.store.accounts[acc.ID] = acc
	w.store.byName[acc.DisplayName] = acc.ID

	copied := *acc
	return &copied, nil
}

func (w *accountWriter) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	acc, ok := w.store.accounts[id]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = time.Now().UTC()
	return nil
}

func (w *accountWriter) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	acc, ok := w.store.accounts[id]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if existing, taken := w.store.byName[displayName]; taken && existing != id {
		return ledger.ErrDisplayNameTaken
	}
	delete(w.store.byName, acc.DisplayName)
	acc.DisplayName = displayName
	acc.UpdatedAt = time.Now().UTC()
	w.store.byName[displayName] = id
	return nil
}

type transactionWriter struct {
	store *Store
}

func (w *transactionWriter) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return w.store.findTransactionByID(id)
}

func (w *transactionWriter) ListBySender(ctx context.Context, senderID uuid.UUID) ([]*transaction.Transaction, error) {
	return w.store.listTransactions(func(t *transaction.Transaction) bool {
		return t.SenderID == senderID
	}), nil
}

func (w *transactionWriter) ListByReceiverDisplayName(ctx context.Context, displayName string) ([]*transaction.Transaction, error) {
	return w.store.listTransactions(func(t *transaction.Transaction) bool {
		return t.ReceiverDisplayName == displayName
	}), nil
}

func (w *transactionWriter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return w.store.findTransactionByID(id)
}

func (w *transactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	txn := &transaction.Transaction{
		ID:                  uuid.Must(uuid.NewV4()),
		SenderID:            create.SenderID,
		ReceiverDisplayName: create.ReceiverDisplayName,
		Amount:              create.Amount,
		Description:         create.Description,
		Status:              create.Status,
		CreatedAt:           time.Now().UTC(),
	}
	w.store.transactions[txn.ID] = txn
	w.store.txOrder = append(w.store.txOrder, txn.ID)

	copied := *txn
	return &copied, nil
}

func (w *transactionWriter) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	txn, ok := w.store.transactions[id]
	if !ok {
		return ledger.ErrTransactionNotFound
	}
	txn.Status = status
	return nil
}
