// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package ledger

import (
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	stdprom "github.com/prometheus/client_golang/prometheus"
)

var (
	accountsHeld = kitprom.NewGaugeFrom(stdprom.GaugeOpts{
		Name: "ledger_accounts",
		Help: "Count of accounts seeded into the ledger.",
	}, nil)

	transactionsRetained = kitprom.NewGaugeFrom(stdprom.GaugeOpts{
		Name: "ledger_transactions",
		Help: "Count of transactions retained in the ledger.",
	}, nil)
)

// RecordMetrics refreshes the ledger gauges. Called on a schedule from the
// server process.
func (s *InMemory) RecordMetrics() {
	s.mtx.RLock()
	accounts, transactions := len(s.accounts), len(s.transactions)
	s.mtx.RUnlock()

	accountsHeld.Set(float64(accounts))
	transactionsRetained.Set(float64(transactions))
}
