// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package policy decides whether a validated transfer is accepted. The
// default implementation reproduces the demo environment's partial-failure
// behavior with configurable probabilities; tests and callers that need
// determinism inject AcceptAll instead.
package policy

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/unifiedpay/transferd/internal/model"
)

var (
	// ErrTransferFailed is returned when a domestic transfer hits the
	// simulated technical failure.
	ErrTransferFailed = errors.New("Transfer failed due to technical issues")

	// ErrComplianceBlocked is returned when an international transfer hits
	// the simulated compliance screen.
	ErrComplianceBlocked = errors.New("Transfer blocked by compliance checks")
)

// Policy approves or rejects a transfer that already passed validation and
// account checks. A nil return means the transfer is accepted.
type Policy interface {
	Approve(typ model.TransferType) error
}

// Simulated rejects a configurable fraction of transfers: domestic transfers
// fail with ErrTransferFailed and international transfers are blocked with
// ErrComplianceBlocked.
type Simulated struct {
	DomesticFailureRate float64
	ComplianceBlockRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a Simulated policy. A zero seed picks one from the
// current time, any other seed makes outcomes reproducible.
func NewSimulated(domesticFailureRate, complianceBlockRate float64, seed int64) *Simulated {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{
		DomesticFailureRate: domesticFailureRate,
		ComplianceBlockRate: complianceBlockRate,
		rng:                 rand.New(rand.NewSource(seed)),
	}
}

func (p *Simulated) Approve(typ model.TransferType) error {
	p.mu.Lock()
	v := p.rng.Float64()
	p.mu.Unlock()

	switch typ {
	case model.DomesticTransfer:
		if v < p.DomesticFailureRate {
			return ErrTransferFailed
		}
	case model.InternationalTransfer:
		if v < p.ComplianceBlockRate {
			return ErrComplianceBlocked
		}
	}
	return nil
}

// AcceptAll approves every transfer. Used in tests and when the failure
// simulation is disabled.
type AcceptAll struct{}

func (AcceptAll) Approve(typ model.TransferType) error {
	return nil
}
