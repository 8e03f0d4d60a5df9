// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package transfers accepts raw transfer submissions, runs them through
// validation, account existence checks and the outcome policy, and appends
// accepted transfers to the ledger. Every submission reaches exactly one
// terminal state; only acceptance mutates the ledger, so callers may safely
// retry any rejection.
package transfers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moov-io/base"
	"github.com/unifiedpay/transferd/internal/events"
	"github.com/unifiedpay/transferd/internal/fee"
	"github.com/unifiedpay/transferd/internal/ledger"
	"github.com/unifiedpay/transferd/internal/model"
	"github.com/unifiedpay/transferd/internal/policy"
	"github.com/unifiedpay/transferd/internal/route"
	"github.com/unifiedpay/transferd/internal/validation"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	transfersAccepted = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "transfers_accepted_total",
		Help: "Count of transfers accepted and appended to the ledger.",
	}, []string{"type"})

	transfersRejected = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "transfers_rejected_total",
		Help: "Count of transfer submissions rejected before acceptance.",
	}, []string{"type", "code"})
)

// Request is a raw transfer submission. Type selects which fields apply:
// domestic transfers carry AccountNumber, international transfers carry
// SourceAccountNumber, IBAN and SwiftCode. Amount is a decimal string in
// both cases.
type Request struct {
	Type model.TransferType

	AccountNumber       string
	SourceAccountNumber string
	Amount              string
	IBAN                string
	SwiftCode           string
}

type Orchestrator struct {
	logger    log.Logger
	ledger    ledger.Repository
	policy    policy.Policy
	calc      *fee.Calculator
	eventRepo events.Repository
}

func NewOrchestrator(
	logger log.Logger,
	ledgerRepo ledger.Repository,
	pol policy.Policy,
	calc *fee.Calculator,
	eventRepo events.Repository,
) *Orchestrator {
	return &Orchestrator{
		logger:    logger,
		ledger:    ledgerRepo,
		policy:    pol,
		calc:      calc,
		eventRepo: eventRepo,
	}
}

// Submit runs req to a terminal state and returns either the accepted
// transfer's projection or a *route.Error describing the rejection.
func (o *Orchestrator) Submit(req Request) (*model.TransferResponse, error) {
	if err := req.Type.Validate(); err != nil {
		return nil, o.reject(req, &route.Error{
			Code:    route.CodeInternalError,
			Message: "Internal server error",
		})
	}

	if errs := validate(req); !errs.Empty() {
		return nil, o.reject(req, &route.Error{
			Code:    route.CodeValidationError,
			Message: "Validation failed",
			Details: errs,
		})
	}

	var recipient *model.Account
	switch req.Type {
	case model.DomesticTransfer:
		acct, err := o.ledger.GetAccount(req.AccountNumber)
		if err != nil {
			return nil, o.reject(req, &route.Error{
				Code:    route.CodeRecipientNotFound,
				Message: "Recipient account not found",
			})
		}
		recipient = acct

	case model.InternationalTransfer:
		if !o.ledger.AccountExists(req.SourceAccountNumber) {
			return nil, o.reject(req, &route.Error{
				Code:    route.CodeSourceAccountNotFound,
				Message: "Source account not found",
			})
		}
	}

	if err := o.policy.Approve(req.Type); err != nil {
		code := route.CodeTransferFailed
		if err == policy.ErrComplianceBlocked {
			code = route.CodeComplianceBlocked
		}
		return nil, o.reject(req, &route.Error{Code: code, Message: err.Error()})
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil {
		// validation already parsed this value
		return nil, o.reject(req, &route.Error{
			Code:    route.CodeInternalError,
			Message: "Internal server error",
		})
	}

	quote, err := o.calc.Compute(req.Type, amount, time.Now())
	if err != nil {
		o.logger.Log("transfers", fmt.Sprintf("problem quoting %s transfer: %v", req.Type, err))
		return nil, o.reject(req, &route.Error{
			Code:    route.CodeInternalError,
			Message: "Internal server error",
		})
	}

	tx := o.ledger.AppendTransaction(&model.Transaction{
		Type:                req.Type,
		AccountNumber:       req.AccountNumber,
		SourceAccountNumber: req.SourceAccountNumber,
		IBAN:                req.IBAN,
		SwiftCode:           req.SwiftCode,
		Amount:              amount,
		Fee:                 quote.Fee,
		Status:              quote.Status,
		Timestamp:           base.Now(),
		ProcessingTime:      quote.ProcessingTime,
		EstimatedArrival:    quote.EstimatedArrival,
	})

	transfersAccepted.With("type", string(req.Type)).Add(1)
	o.writeEvent(req, fmt.Sprintf("transfer accepted with transaction_id=%s", tx.ID), map[string]string{
		"transactionId": tx.ID,
		"status":        string(tx.Status),
	})

	resp := &model.TransferResponse{
		TransactionID:    tx.ID,
		Status:           tx.Status,
		Amount:           tx.Amount,
		Fee:              tx.Fee,
		Total:            quote.Total,
		ProcessingTime:   tx.ProcessingTime,
		Timestamp:        tx.Timestamp,
		EstimatedArrival: tx.EstimatedArrival,
	}
	switch req.Type {
	case model.DomesticTransfer:
		resp.Recipient = model.Recipient{
			AccountNumber: recipient.AccountNumber,
			Name:          recipient.Name,
		}
	case model.InternationalTransfer:
		resp.Recipient = model.Recipient{
			IBAN:      req.IBAN,
			SwiftCode: req.SwiftCode,
		}
	}
	return resp, nil
}

// validate runs the composite field validators for req. International
// transfers check the source account number under its own details key since
// that field references an existing account.
func validate(req Request) validation.Errors {
	switch req.Type {
	case model.InternationalTransfer:
		errs := validation.InternationalTransfer(req.Amount, req.IBAN, req.SwiftCode)
		if v := validation.AccountNumber(req.SourceAccountNumber); v != "" {
			errs[validation.FieldSourceAccountNumber] = v
		}
		return errs
	default:
		return validation.DomesticTransfer(req.AccountNumber, req.Amount)
	}
}

// reject records the terminal state and hands back err unchanged.
func (o *Orchestrator) reject(req Request, xerr *route.Error) error {
	transfersRejected.With("type", string(req.Type), "code", xerr.Code).Add(1)
	o.writeEvent(req, fmt.Sprintf("transfer rejected with code=%s", xerr.Code), map[string]string{
		"code": xerr.Code,
	})
	return xerr
}

func (o *Orchestrator) writeEvent(req Request, message string, metadata map[string]string) {
	if o.eventRepo == nil {
		return
	}
	err := o.eventRepo.WriteEvent(&events.Event{
		Topic:    fmt.Sprintf("%s transfer", req.Type),
		Message:  message,
		Type:     events.TransferEvent,
		Metadata: metadata,
	})
	if err != nil {
		o.logger.Log("transfers", fmt.Sprintf("error writing event: %v", err))
	}
}
