// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package fee computes the deterministic fee, status and arrival quote for an
// accepted transfer. Quotes are a pure function of transfer type, amount and
// the acceptance instant.
package fee

import (
	"fmt"
	"math"
	"time"

	"github.com/moov-io/base"
	"github.com/unifiedpay/transferd/internal/model"
)

// Processing time display labels shown to the caller.
const (
	DomesticProcessingTime      = "< 1 minute"
	InternationalProcessingTime = "1-3 business days"
)

// Quote is the computed outcome for an accepted transfer.
type Quote struct {
	// Fee charged for the transfer. Never negative.
	Fee float64

	// Total is amount plus fee.
	Total float64

	// Status the resulting Transaction is created with.
	Status model.TransferStatus

	// ProcessingTime display label.
	ProcessingTime string

	// EstimatedArrival is set for international transfers only.
	EstimatedArrival *base.Time
}

type Calculator struct {
	// DomesticRate is the fee rate applied to domestic transfers.
	DomesticRate float64

	// InternationalRate is the fee rate applied to international transfers,
	// subject to InternationalMinimum.
	InternationalRate float64

	// InternationalMinimum is the smallest fee charged on any international
	// transfer, in USD.
	InternationalMinimum float64

	// ArrivalDays is how many days out international funds are estimated to land.
	ArrivalDays int
}

// NewCalculator returns a Calculator with the standard rates: 0.1% domestic,
// 1.5% (minimum $15.00) international, arriving in 3 days.
func NewCalculator() *Calculator {
	return &Calculator{
		DomesticRate:         0.001,
		InternationalRate:    0.015,
		InternationalMinimum: 15.00,
		ArrivalDays:          3,
	}
}

func (c *Calculator) Validate() error {
	if c == nil {
		return fmt.Errorf("nil Calculator")
	}
	if c.DomesticRate < 0 || c.DomesticRate >= 1 {
		return fmt.Errorf("domestic rate %.4f is invalid", c.DomesticRate)
	}
	if c.InternationalRate < 0 || c.InternationalRate >= 1 {
		return fmt.Errorf("international rate %.4f is invalid", c.InternationalRate)
	}
	if c.InternationalMinimum < 0 {
		return fmt.Errorf("international minimum fee %.2f is invalid", c.InternationalMinimum)
	}
	if c.ArrivalDays <= 0 {
		return fmt.Errorf("arrival days %d is invalid", c.ArrivalDays)
	}
	return nil
}

// Compute quotes a transfer of amount accepted at now.
func (c *Calculator) Compute(typ model.TransferType, amount float64, now time.Time) (*Quote, error) {
	switch typ {
	case model.DomesticTransfer:
		fee := amount * c.DomesticRate
		return &Quote{
			Fee:            fee,
			Total:          amount + fee,
			Status:         model.TransferCompleted,
			ProcessingTime: DomesticProcessingTime,
		}, nil

	case model.InternationalTransfer:
		fee := math.Max(amount*c.InternationalRate, c.InternationalMinimum)
		arrival := base.NewTime(now.Add(time.Duration(c.ArrivalDays) * 24 * time.Hour))
		return &Quote{
			Fee:              fee,
			Total:            amount + fee,
			Status:           model.TransferPending,
			ProcessingTime:   InternationalProcessingTime,
			EstimatedArrival: &arrival,
		}, nil

	default:
		return nil, fmt.Errorf("unknown TransferType(%s)", typ)
	}
}
