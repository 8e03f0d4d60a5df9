// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	appcfg "github.com/unifiedpay/transferd/internal/config"
	"github.com/unifiedpay/transferd/internal/policy"
)

func TestMain__seedAccounts(t *testing.T) {
	cfg := appcfg.Empty()
	accounts := seedAccounts(cfg)
	if len(accounts) != 3 {
		t.Errorf("got %d seed accounts", len(accounts))
	}
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			t.Errorf("account=%s: %v", accounts[i].AccountNumber, err)
		}
	}
}

func TestMain__feeCalculator(t *testing.T) {
	cfg := appcfg.Empty()
	calc := feeCalculator(cfg)
	if err := calc.Validate(); err != nil {
		t.Fatal(err)
	}
	if calc.InternationalMinimum != 15.00 {
		t.Errorf("got minimum fee %.2f", calc.InternationalMinimum)
	}
}

func TestMain__outcomePolicy(t *testing.T) {
	cfg := appcfg.Empty()

	cfg.Simulation.Enabled = false
	if _, ok := outcomePolicy(cfg).(policy.AcceptAll); !ok {
		t.Error("expected AcceptAll policy")
	}

	cfg.Simulation.Enabled = true
	if _, ok := outcomePolicy(cfg).(*policy.Simulated); !ok {
		t.Error("expected Simulated policy")
	}
}
