// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/text/currency"
)

var accountNumberPattern = regexp.MustCompile(`^\d{8,20}$`)

// Account is an entry in the ledger's account directory. Accounts are seeded
// at process startup and never mutated afterwards. Balance is kept internal
// and never rendered over the wire.
type Account struct {
	// AccountNumber is the unique 8-20 digit identifier for this account.
	AccountNumber string `json:"accountNumber"`

	// Name is the account holder's display name.
	Name string `json:"name"`

	// Balance is the account's current balance in the account's currency.
	Balance float64 `json:"-"`

	// Currency is the ISO 4217 currency symbol, i.e. USD, GBP
	Currency string `json:"currency"`
}

func (a *Account) Validate() error {
	if a == nil {
		return errors.New("nil Account")
	}
	if !accountNumberPattern.MatchString(a.AccountNumber) {
		return fmt.Errorf("account number %q must be 8-20 digits", a.AccountNumber)
	}
	if a.Name == "" {
		return errors.New("account: missing name")
	}
	if _, err := currency.ParseISO(a.Currency); err != nil {
		return fmt.Errorf("account %s: %v", a.AccountNumber, err)
	}
	return nil
}
