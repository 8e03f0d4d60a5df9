// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http"
)

// Error codes carried in the error envelope. These are part of the wire
// contract shared with clients, which display per-field details inline and a
// banner for everything else.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	CodeRecipientNotFound     = "RECIPIENT_NOT_FOUND"
	CodeSourceAccountNotFound = "SOURCE_ACCOUNT_NOT_FOUND"
	CodeTransferFailed        = "TRANSFER_FAILED"
	CodeComplianceBlocked     = "COMPLIANCE_BLOCKED"
	CodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
	CodeNotFound              = "NOT_FOUND"

	// CodeNetworkError is emitted by clients when a request never reaches
	// the server. Declared here so both sides name it identically, but the
	// server itself never responds with it.
	CodeNetworkError = "NETWORK_ERROR"
)

// Error is a domain rejection rendered as the error envelope. All expected
// failure paths return one of these; anything else is surfaced as a generic
// INTERNAL_ERROR with no internal detail leaked.
type Error struct {
	Code    string
	Message string

	// Details carries per-field validation messages for VALIDATION_ERROR.
	Details map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode maps an envelope code onto its HTTP status.
func StatusCode(code string) int {
	switch code {
	case CodeValidationError, CodeComplianceBlocked:
		return http.StatusBadRequest
	case CodeAccountNotFound, CodeRecipientNotFound, CodeSourceAccountNotFound, CodeTransactionNotFound, CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}
