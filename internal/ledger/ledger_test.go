// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/moov-io/base"
	"github.com/unifiedpay/transferd/internal/model"
)

func seedAccounts(t *testing.T) *InMemory {
	t.Helper()

	repo := NewInMemory()
	err := repo.Seed([]*model.Account{
		{AccountNumber: "12345678", Name: "John Doe", Balance: 15000, Currency: "USD"},
		{AccountNumber: "87654321", Name: "Jane Smith", Balance: 8500, Currency: "USD"},
		{AccountNumber: "11223344", Name: "Bob Johnson", Balance: 25000, Currency: "USD"},
	})
	if err != nil {
		t.Fatal(err.Error())
	}
	return repo
}

func TestLedger__accounts(t *testing.T) {
	repo := seedAccounts(t)

	acct, err := repo.GetAccount("12345678")
	if err != nil {
		t.Fatal(err.Error())
	}
	if acct.Name != "John Doe" {
		t.Errorf("got %q", acct.Name)
	}

	if !repo.AccountExists("87654321") {
		t.Error("expected account")
	}
	if repo.AccountExists("99999999") {
		t.Error("unexpected account")
	}
	if _, err := repo.GetAccount("99999999"); err != ErrNotFound {
		t.Errorf("got %v", err)
	}

	// duplicate seeds are rejected
	err = repo.StoreAccount(&model.Account{AccountNumber: "12345678", Name: "Imposter", Currency: "USD"})
	if err != ErrAlreadyExists {
		t.Errorf("got %v", err)
	}

	// invalid accounts never enter the directory
	err = repo.Seed([]*model.Account{{AccountNumber: "123", Name: "Short", Currency: "USD"}})
	if err == nil {
		t.Error("expected error")
	}
}

func TestLedger__appendAssignsID(t *testing.T) {
	repo := seedAccounts(t)

	first := repo.AppendTransaction(&model.Transaction{Type: model.DomesticTransfer, Amount: 10})
	second := repo.AppendTransaction(&model.Transaction{Type: model.DomesticTransfer, Amount: 20})

	if first.ID == "" || second.ID == "" {
		t.Fatal("missing transaction IDs")
	}
	if first.ID == second.ID {
		t.Errorf("duplicate ID %s", first.ID)
	}
	if first.Timestamp.IsZero() {
		t.Error("missing timestamp")
	}

	tx, err := repo.GetTransaction(first.ID)
	if err != nil {
		t.Fatal(err.Error())
	}
	if tx.Amount != 10 {
		t.Errorf("got %.2f", tx.Amount)
	}
	if _, err := repo.GetTransaction("missing"); err != ErrNotFound {
		t.Errorf("got %v", err)
	}
}

func TestLedger__listOrdering(t *testing.T) {
	repo := NewInMemory()

	// insert out of timestamp order
	now := time.Now()
	for _, age := range []time.Duration{2 * time.Hour, 30 * time.Minute, 4 * time.Hour, time.Minute} {
		repo.AppendTransaction(&model.Transaction{
			Type:      model.DomesticTransfer,
			Amount:    age.Minutes(),
			Timestamp: base.NewTime(now.Add(-age)),
		})
	}

	page, total, hasMore := repo.ListTransactions(10, 0)
	if total != 4 || hasMore {
		t.Fatalf("total=%d hasMore=%v", total, hasMore)
	}
	for i := 1; i < len(page); i++ {
		if page[i].Timestamp.Time.After(page[i-1].Timestamp.Time) {
			t.Errorf("page[%d] is newer than page[%d]", i, i-1)
		}
	}
	if page[0].Amount != 1 { // the one-minute-old transaction
		t.Errorf("got %.2f", page[0].Amount)
	}
}

func TestLedger__pagination(t *testing.T) {
	repo := NewInMemory()
	for i := 0; i < 25; i++ {
		repo.AppendTransaction(&model.Transaction{Type: model.DomesticTransfer, Amount: float64(i)})
	}

	page, total, hasMore := repo.ListTransactions(10, 0)
	if len(page) != 10 || total != 25 || !hasMore {
		t.Errorf("len=%d total=%d hasMore=%v", len(page), total, hasMore)
	}

	page, _, hasMore = repo.ListTransactions(10, 20)
	if len(page) != 5 || hasMore {
		t.Errorf("len=%d hasMore=%v", len(page), hasMore)
	}

	page, total, hasMore = repo.ListTransactions(10, 100)
	if len(page) != 0 || total != 25 || hasMore {
		t.Errorf("len=%d total=%d hasMore=%v", len(page), total, hasMore)
	}

	page, _, _ = repo.ListTransactions(0, 0)
	if len(page) != 0 {
		t.Errorf("len=%d", len(page))
	}
}

func TestLedger__concurrentAppends(t *testing.T) {
	repo := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				repo.AppendTransaction(&model.Transaction{Type: model.InternationalTransfer, Amount: 1})
			}
		}()
	}
	wg.Wait()

	_, total, _ := repo.ListTransactions(1, 0)
	if total != 400 {
		t.Errorf("total=%d", total)
	}

	seen := make(map[string]bool)
	page, _, _ := repo.ListTransactions(400, 0)
	for i := range page {
		if seen[page[i].ID] {
			t.Fatalf("duplicate transaction ID %s", page[i].ID)
		}
		seen[page[i].ID] = true
	}
}

func TestLedger__ping(t *testing.T) {
	repo := NewInMemory()
	if err := repo.Ping(); err == nil {
		t.Error("expected error on empty ledger")
	}

	repo = seedAccounts(t)
	if err := repo.Ping(); err != nil {
		t.Error(err.Error())
	}
	repo.RecordMetrics()
}

func TestLedger__seedCollision(t *testing.T) {
	repo := seedAccounts(t)
	err := repo.Seed([]*model.Account{
		{AccountNumber: "12345678", Name: "John Doe", Currency: "USD"},
	})
	if err != ErrAlreadyExists {
		t.Errorf("got %v", err)
	}
}
