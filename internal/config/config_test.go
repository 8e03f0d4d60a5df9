// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig__defaults(t *testing.T) {
	cfg, err := FromFile("")
	if err != nil {
		t.Fatal(err.Error())
	}

	if cfg.Transfers.DomesticFeeRate != 0.001 {
		t.Errorf("got %.4f", cfg.Transfers.DomesticFeeRate)
	}
	if cfg.Transfers.InternationalMinimumFee != 15.00 {
		t.Errorf("got %.2f", cfg.Transfers.InternationalMinimumFee)
	}
	if !cfg.Simulation.Enabled {
		t.Error("simulation should default on")
	}
	if cfg.Simulation.DomesticFailureRate != 0.05 || cfg.Simulation.ComplianceBlockRate != 0.10 {
		t.Errorf("rates: %.2f %.2f", cfg.Simulation.DomesticFailureRate, cfg.Simulation.ComplianceBlockRate)
	}
	if len(cfg.Accounts.Seed) != 3 {
		t.Errorf("got %d seed accounts", len(cfg.Accounts.Seed))
	}
	if v := cfg.Simulation.Latency.Domestic(); v != 1500*time.Millisecond {
		t.Errorf("got %v", v)
	}
}

func TestConfig__read(t *testing.T) {
	cfg, err := Read([]byte(`
logging:
  format: json
http:
  bindAddress: ":8085"
transfers:
  domesticFeeRate: 0.002
simulation:
  enabled: false
  latency:
    domesticMs: 0
accounts:
  seed:
    - accountNumber: "12345678"
      name: "John Doe"
      balance: 15000
      currency: "USD"
`))
	if err != nil {
		t.Fatal(err.Error())
	}

	if cfg.Http.BindAddress != ":8085" {
		t.Errorf("got %q", cfg.Http.BindAddress)
	}
	if cfg.Transfers.DomesticFeeRate != 0.002 {
		t.Errorf("got %.4f", cfg.Transfers.DomesticFeeRate)
	}
	if cfg.Simulation.Enabled {
		t.Error("simulation should be disabled")
	}
	// unset fields keep their defaults
	if cfg.Transfers.InternationalFeeRate != 0.015 {
		t.Errorf("got %.4f", cfg.Transfers.InternationalFeeRate)
	}
	if len(cfg.Accounts.Seed) != 1 {
		t.Errorf("got %d seed accounts", len(cfg.Accounts.Seed))
	}
}

func TestConfig__invalid(t *testing.T) {
	cases := []struct {
		yaml     string
		contains string
	}{
		{"transfers:\n  domesticFeeRate: 2.0", "domesticFeeRate"},
		{"transfers:\n  internationalArrivalDays: -3", "internationalArrivalDays"},
		{"simulation:\n  complianceBlockRate: 7.5", "complianceBlockRate"},
		{"accounts:\n  seed:\n    - accountNumber: \"123\"\n      name: \"x\"\n      currency: \"USD\"", "8-20 digits"},
	}
	for _, tc := range cases {
		if _, err := Read([]byte(tc.yaml)); err == nil {
			t.Errorf("expected error for %q", tc.yaml)
		} else if !strings.Contains(err.Error(), tc.contains) {
			t.Errorf("got %v", err)
		}
	}
}

func TestConfig__exampleFile(t *testing.T) {
	cfg, err := FromFile(filepath.Join("..", "..", "examples", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Http.BindAddress != ":8080" {
		t.Errorf("got %q", cfg.Http.BindAddress)
	}
	if len(cfg.Accounts.Seed) != 3 {
		t.Errorf("got %d seed accounts", len(cfg.Accounts.Seed))
	}
}

func TestConfig__missingFile(t *testing.T) {
	if _, err := FromFile("/tmp/does/not/exist.yaml"); err == nil {
		t.Error("expected error")
	}

	var cfg *Config
	if err := cfg.Validate(); err == nil {
		t.Error("expected error")
	}
}
