// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package accounts exposes read-only account lookups against the ledger.
package accounts

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unifiedpay/transferd/internal/ledger"
	"github.com/unifiedpay/transferd/internal/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type accountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`

	// HasInsufficientFunds is always false. Balances are never exposed, so
	// callers get a flag instead of a number to compare against.
	HasInsufficientFunds bool `json:"hasInsufficientFunds"`
}

// AddRoutes registers the account verification endpoint. Lookups are delayed
// by delay to mimic an upstream core-banking call.
func AddRoutes(logger log.Logger, r *mux.Router, repo ledger.Repository, delay time.Duration) {
	r.Methods("GET").Path("/api/account/{accountNumber}").HandlerFunc(route.Simulate(delay, getAccount(logger, repo)))
}

func getAccount(logger log.Logger, repo ledger.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		accountNumber := getAccountNumber(r)
		if accountNumber == "" {
			responder.Problem(&route.Error{Code: route.CodeAccountNotFound, Message: "Account not found"})
			return
		}

		account, err := repo.GetAccount(accountNumber)
		if err != nil {
			responder.Log("accounts", fmt.Sprintf("lookup of account=%s failed: %v", accountNumber, err))
			responder.Problem(&route.Error{Code: route.CodeAccountNotFound, Message: "Account not found"})
			return
		}

		responder.Success(accountResponse{
			AccountNumber:        account.AccountNumber,
			Name:                 account.Name,
			Currency:             account.Currency,
			HasInsufficientFunds: false,
		})
	}
}

func getAccountNumber(r *http.Request) string {
	v, ok := mux.Vars(r)["accountNumber"]
	if !ok {
		return ""
	}
	return v
}
