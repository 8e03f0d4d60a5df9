// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package validation holds the field-level transfer validators shared by the
// HTTP layer and any client rendering inline form errors. Both sides enforce
// the identical rules, so the regexes and thresholds live here and nowhere
// else.
//
// Validators return an empty string for valid input and a human-readable
// message otherwise. They never mutate state and never panic on bad input.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Field names used as keys in Errors and in the error envelope's details map.
const (
	FieldAccountNumber       = "accountNumber"
	FieldSourceAccountNumber = "sourceAccountNumber"
	FieldAmount              = "amount"
	FieldIBAN                = "iban"
	FieldSwiftCode           = "swiftCode"
)

// MaxTransferAmount is the largest amount accepted for any transfer, in USD.
const MaxTransferAmount = 100000.0

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	whitespace = regexp.MustCompile(`\s`)

	// two letter country code, two check digits, then the BBAN
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)

	// 4 letter institution code, 2 letter country code, 2 alphanumeric
	// location code and an optional 3 alphanumeric branch code
	swiftPattern = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// AccountNumber checks an 8-20 digit account number.
func AccountNumber(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Account number is required"
	}
	if !digitsOnly.MatchString(v) {
		return "Account number must contain only numbers"
	}
	if len(v) < 8 || len(v) > 20 {
		return "Account number must be between 8-20 digits"
	}
	return ""
}

// Amount checks a decimal string transfer amount. Signed decimals parse
// successfully so that negative values are reported as "greater than zero"
// failures rather than parse failures.
func Amount(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Amount is required"
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return "Amount must be a valid number"
	}
	if n <= 0 {
		return "Amount must be greater than zero"
	}
	if n > MaxTransferAmount {
		return "Amount cannot exceed $100,000"
	}
	return ""
}

// IBAN checks an International Bank Account Number after normalization.
// The length checks run before the format check, too-long before too-short.
func IBAN(v string) string {
	if strings.TrimSpace(v) == "" {
		return "IBAN is required"
	}
	clean := Normalize(v)
	if len(clean) > 34 {
		return "IBAN cannot exceed 34 characters"
	}
	if len(clean) < 15 {
		return "IBAN must be at least 15 characters"
	}
	if !ibanPattern.MatchString(clean) {
		return "Invalid IBAN format"
	}
	return ""
}

// SwiftCode checks an 8 or 11 character SWIFT/BIC code after normalization.
func SwiftCode(v string) string {
	if strings.TrimSpace(v) == "" {
		return "SWIFT code is required"
	}
	if !swiftPattern.MatchString(Normalize(v)) {
		return "Invalid SWIFT code format (e.g., AAAABBCC123)"
	}
	return ""
}

// Normalize strips all whitespace from v and upper-cases the remainder.
func Normalize(v string) string {
	return strings.ToUpper(whitespace.ReplaceAllString(v, ""))
}

// Errors maps field names to validation messages. Only failing fields are
// present, so an input is submittable iff the map is empty.
type Errors map[string]string

func (e Errors) Empty() bool {
	return len(e) == 0
}

// DomesticTransfer runs every field validator for a domestic transfer.
func DomesticTransfer(accountNumber, amount string) Errors {
	errs := make(Errors)
	if v := AccountNumber(accountNumber); v != "" {
		errs[FieldAccountNumber] = v
	}
	if v := Amount(amount); v != "" {
		errs[FieldAmount] = v
	}
	return errs
}

// InternationalTransfer runs every field validator for an international
// transfer. The source account number is validated separately by the caller
// since it references an existing account rather than free-form input.
func InternationalTransfer(amount, iban, swiftCode string) Errors {
	errs := make(Errors)
	if v := Amount(amount); v != "" {
		errs[FieldAmount] = v
	}
	if v := IBAN(iban); v != "" {
		errs[FieldIBAN] = v
	}
	if v := SwiftCode(swiftCode); v != "" {
		errs[FieldSwiftCode] = v
	}
	return errs
}
