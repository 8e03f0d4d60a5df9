// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/unifiedpay/transferd/internal/model"

	"github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	Transfers  Transfers
	Simulation Simulation
	Accounts   Accounts
}

type Logging struct {
	Format string
	Level  string
}

type HTTP struct {
	BindAddress string
}

type Admin struct {
	BindAddress string
}

// Transfers holds the fee schedule applied to accepted transfers.
type Transfers struct {
	DomesticFeeRate          float64
	InternationalFeeRate     float64
	InternationalMinimumFee  float64
	InternationalArrivalDays int
}

func (t Transfers) Validate() error {
	if t.DomesticFeeRate < 0 || t.DomesticFeeRate >= 1 {
		return fmt.Errorf("domesticFeeRate=%.4f is invalid", t.DomesticFeeRate)
	}
	if t.InternationalFeeRate < 0 || t.InternationalFeeRate >= 1 {
		return fmt.Errorf("internationalFeeRate=%.4f is invalid", t.InternationalFeeRate)
	}
	if t.InternationalMinimumFee < 0 {
		return fmt.Errorf("internationalMinimumFee=%.2f is invalid", t.InternationalMinimumFee)
	}
	if t.InternationalArrivalDays <= 0 {
		return fmt.Errorf("internationalArrivalDays=%d is invalid", t.InternationalArrivalDays)
	}
	return nil
}

// Simulation configures the demo environment behaviors: random transfer
// failures, compliance blocks and per-endpoint artificial latency.
type Simulation struct {
	// Enabled turns the probabilistic outcome policy on. When false every
	// validated transfer is accepted.
	Enabled bool

	// Seed makes simulated outcomes reproducible when non-zero.
	Seed int64

	DomesticFailureRate float64
	ComplianceBlockRate float64

	Latency Latency
}

func (s Simulation) Validate() error {
	if s.DomesticFailureRate < 0 || s.DomesticFailureRate > 1 {
		return fmt.Errorf("domesticFailureRate=%.4f is invalid", s.DomesticFailureRate)
	}
	if s.ComplianceBlockRate < 0 || s.ComplianceBlockRate > 1 {
		return fmt.Errorf("complianceBlockRate=%.4f is invalid", s.ComplianceBlockRate)
	}
	return nil
}

// Latency is the fixed artificial delay per endpoint, in milliseconds.
type Latency struct {
	AccountMs       int
	DomesticMs      int
	InternationalMs int
	TransactionsMs  int
	TransactionMs   int
}

func (l Latency) Account() time.Duration  { return time.Duration(l.AccountMs) * time.Millisecond }
func (l Latency) Domestic() time.Duration { return time.Duration(l.DomesticMs) * time.Millisecond }

func (l Latency) International() time.Duration {
	return time.Duration(l.InternationalMs) * time.Millisecond
}

func (l Latency) Transactions() time.Duration {
	return time.Duration(l.TransactionsMs) * time.Millisecond
}

func (l Latency) Transaction() time.Duration {
	return time.Duration(l.TransactionMs) * time.Millisecond
}

type Accounts struct {
	Seed []SeedAccount
}

type SeedAccount struct {
	AccountNumber string
	Name          string
	Balance       float64
	Currency      string
}

func (a SeedAccount) Account() *model.Account {
	return &model.Account{
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		Balance:       a.Balance,
		Currency:      a.Currency,
	}
}

func (a Accounts) Validate() error {
	if len(a.Seed) == 0 {
		return errors.New("no seed accounts")
	}
	for i := range a.Seed {
		if err := a.Seed[i].Account().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Empty returns the default demo configuration.
func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Http: HTTP{
			BindAddress: ":8080",
		},
		Admin: Admin{
			BindAddress: ":9090",
		},
		Transfers: Transfers{
			DomesticFeeRate:          0.001,
			InternationalFeeRate:     0.015,
			InternationalMinimumFee:  15.00,
			InternationalArrivalDays: 3,
		},
		Simulation: Simulation{
			Enabled:             true,
			DomesticFailureRate: 0.05,
			ComplianceBlockRate: 0.10,
			Latency: Latency{
				AccountMs:       500,
				DomesticMs:      1500,
				InternationalMs: 2500,
				TransactionsMs:  300,
				TransactionMs:   200,
			},
		},
		Accounts: Accounts{
			Seed: []SeedAccount{
				{AccountNumber: "12345678", Name: "John Doe", Balance: 15000, Currency: "USD"},
				{AccountNumber: "87654321", Name: "Jane Smith", Balance: 8500, Currency: "USD"},
				{AccountNumber: "11223344", Name: "Bob Johnson", Balance: 25000, Currency: "USD"},
			},
		},
	}
}

// FromFile loads the config at path, or the defaults when path is empty.
func FromFile(path string) (*Config, error) {
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg := setupLogger(Empty())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := cfg.Transfers.Validate(); err != nil {
		return fmt.Errorf("transfers: %v", err)
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %v", err)
	}
	if err := cfg.Accounts.Validate(); err != nil {
		return fmt.Errorf("accounts: %v", err)
	}

	return nil
}
