// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type TransferType string

const (
	DomesticTransfer      TransferType = "domestic"
	InternationalTransfer TransferType = "international"
)

func (tt TransferType) Validate() error {
	switch tt {
	case DomesticTransfer, InternationalTransfer:
		return nil
	default:
		return fmt.Errorf("TransferType(%s) is invalid", tt)
	}
}

func (tt *TransferType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*tt = TransferType(strings.ToLower(s))
	if err := tt.Validate(); err != nil {
		return err
	}
	return nil
}

type TransferStatus string

const (
	TransferCompleted TransferStatus = "completed"
	TransferPending   TransferStatus = "pending"
	TransferFailed    TransferStatus = "failed"
)

func (ts TransferStatus) Equal(other TransferStatus) bool {
	return strings.EqualFold(string(ts), string(other))
}

func (ts TransferStatus) Validate() error {
	switch ts {
	case TransferCompleted, TransferPending, TransferFailed:
		return nil
	default:
		return fmt.Errorf("TransferStatus(%s) is invalid", ts)
	}
}

func (ts *TransferStatus) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*ts = TransferStatus(strings.ToLower(s))
	if err := ts.Validate(); err != nil {
		return err
	}
	return nil
}
