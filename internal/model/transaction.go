// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"github.com/moov-io/base"
)

// Transaction is the record kept for every accepted transfer. Transactions
// are created exactly once, at acceptance time, and never mutated afterwards.
type Transaction struct {
	// ID is a unique string representing this Transaction.
	ID string `json:"id"`

	// Type determines if this was a domestic or international transfer
	Type TransferType `json:"type"`

	// AccountNumber is the recipient account for domestic transfers.
	AccountNumber string `json:"accountNumber,omitempty"`

	// SourceAccountNumber is the originating account for international transfers.
	SourceAccountNumber string `json:"sourceAccountNumber,omitempty"`

	// IBAN is the recipient's International Bank Account Number (international only).
	IBAN string `json:"iban,omitempty"`

	// SwiftCode routes the transfer to the recipient's bank (international only).
	SwiftCode string `json:"swiftCode,omitempty"`

	// Amount is the transfer amount in USD.
	Amount float64 `json:"amount"`

	// Fee charged for this transfer. Never negative.
	Fee float64 `json:"fee"`

	// Status defines the terminal state of the Transaction
	Status TransferStatus `json:"status"`

	// Timestamp representing the creation instant of the object in ISO 8601
	Timestamp base.Time `json:"timestamp"`

	// ProcessingTime is a display label, i.e. "< 1 minute"
	ProcessingTime string `json:"processingTime"`

	// EstimatedArrival is when international funds are expected to land.
	EstimatedArrival *base.Time `json:"estimatedArrival,omitempty"`
}

// Recipient identifies where an accepted transfer was sent. Domestic
// transfers carry the account number and holder name, international transfers
// the IBAN and SWIFT code.
type Recipient struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	Name          string `json:"name,omitempty"`

	IBAN      string `json:"iban,omitempty"`
	SwiftCode string `json:"swiftCode,omitempty"`
}

// TransferResponse is the wire projection of an accepted Transaction. It is
// derived on every submission and never stored.
type TransferResponse struct {
	TransactionID  string         `json:"transactionId"`
	Status         TransferStatus `json:"status"`
	Amount         float64        `json:"amount"`
	Fee            float64        `json:"fee"`
	Total          float64        `json:"total"`
	ProcessingTime string         `json:"processingTime"`
	Timestamp      base.Time      `json:"timestamp"`
	Recipient      Recipient      `json:"recipient"`

	EstimatedArrival *base.Time `json:"estimatedArrival,omitempty"`
}
