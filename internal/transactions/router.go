// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package transactions serves the transfer history recorded in the ledger.
package transactions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unifiedpay/transferd/internal/ledger"
	"github.com/unifiedpay/transferd/internal/model"
	"github.com/unifiedpay/transferd/internal/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type transactionPage struct {
	Transactions []*model.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	HasMore      bool                 `json:"hasMore"`
}

// AddRoutes registers the transaction history endpoints.
func AddRoutes(logger log.Logger, r *mux.Router, repo ledger.Repository, listDelay, getDelay time.Duration) {
	r.Methods("GET").Path("/api/transactions").HandlerFunc(route.Simulate(listDelay, getTransactions(logger, repo)))
	r.Methods("GET").Path("/api/transaction/{transactionID}").HandlerFunc(route.Simulate(getDelay, getTransaction(logger, repo)))
}

func getTransactions(logger log.Logger, repo ledger.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		limit, offset := route.ReadLimit(r), route.ReadOffset(r)
		transactions, total, hasMore := repo.ListTransactions(limit, offset)
		if transactions == nil {
			transactions = []*model.Transaction{}
		}

		responder.Success(transactionPage{
			Transactions: transactions,
			Total:        total,
			HasMore:      hasMore,
		})
	}
}

func getTransaction(logger log.Logger, repo ledger.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		transactionID := getTransactionID(r)
		if transactionID == "" {
			responder.Problem(&route.Error{Code: route.CodeTransactionNotFound, Message: "Transaction not found"})
			return
		}

		transaction, err := repo.GetTransaction(transactionID)
		if err != nil {
			responder.Log("transactions", fmt.Sprintf("lookup of transaction=%s failed: %v", transactionID, err))
			responder.Problem(&route.Error{Code: route.CodeTransactionNotFound, Message: "Transaction not found"})
			return
		}
		responder.Success(transaction)
	}
}

func getTransactionID(r *http.Request) string {
	v, ok := mux.Vars(r)["transactionID"]
	if !ok {
		return ""
	}
	return v
}
