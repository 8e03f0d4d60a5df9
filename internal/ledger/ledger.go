// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package ledger owns the account directory and the transaction log. Both
// live for the process lifetime only. AppendTransaction is the sole mutation
// point after startup; no operation deletes or rewrites a transaction.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/moov-io/base"
	"github.com/unifiedpay/transferd/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Repository interface {
	StoreAccount(acct *model.Account) error
	GetAccount(accountNumber string) (*model.Account, error)
	AccountExists(accountNumber string) bool

	// AppendTransaction assigns tx a fresh unique id, stamps insertion order
	// and retains it forever.
	AppendTransaction(tx *model.Transaction) *model.Transaction

	// ListTransactions returns a page sorted by timestamp descending along
	// with the overall count and whether more pages follow.
	ListTransactions(limit, offset int64) ([]*model.Transaction, int64, bool)

	GetTransaction(transactionID string) (*model.Transaction, error)
}

// NewInMemory creates an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{
		accounts: make(map[string]*model.Account),
	}
}

type InMemory struct {
	mtx          sync.RWMutex
	accounts     map[string]*model.Account
	transactions []*model.Transaction
}

// Seed stores every account, rejecting duplicates and invalid entries.
func (s *InMemory) Seed(accounts []*model.Account) error {
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			return err
		}
		if err := s.StoreAccount(accounts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemory) StoreAccount(acct *model.Account) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.accounts[acct.AccountNumber]; ok {
		return ErrAlreadyExists
	}
	s.accounts[acct.AccountNumber] = acct
	return nil
}

func (s *InMemory) GetAccount(accountNumber string) (*model.Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if acct, ok := s.accounts[accountNumber]; ok {
		return acct, nil
	}
	return nil, ErrNotFound
}

func (s *InMemory) AccountExists(accountNumber string) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	_, ok := s.accounts[accountNumber]
	return ok
}

func (s *InMemory) AppendTransaction(tx *model.Transaction) *model.Transaction {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tx.ID = base.ID()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = base.Now()
	}
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *InMemory) ListTransactions(limit, offset int64) ([]*model.Transaction, int64, bool) {
	s.mtx.RLock()
	out := make([]*model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	s.mtx.RUnlock()

	// newest first, insertion order breaks timestamp ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Time.After(out[j].Timestamp.Time)
	})

	total := int64(len(out))
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return []*model.Transaction{}, total, false
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return out[offset:end], total, end < total
}

func (s *InMemory) GetTransaction(transactionID string) (*model.Transaction, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	for i := range s.transactions {
		if s.transactions[i].ID == transactionID {
			return s.transactions[i], nil
		}
	}
	return nil, ErrNotFound
}

// Ping reports whether the ledger is usable, for liveness checks.
func (s *InMemory) Ping() error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if len(s.accounts) == 0 {
		return errors.New("ledger: no accounts seeded")
	}
	return nil
}
