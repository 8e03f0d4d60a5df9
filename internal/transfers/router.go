// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package transfers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"net/http"

	"github.com/unifiedpay/transferd/internal/model"
	"github.com/unifiedpay/transferd/internal/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type domesticTransferRequest struct {
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
}

type internationalTransferRequest struct {
	SourceAccountNumber string `json:"sourceAccountNumber"`
	Amount              string `json:"amount"`
	IBAN                string `json:"iban"`
	SwiftCode           string `json:"swiftCode"`
}

type TransferRouter struct {
	logger       log.Logger
	orchestrator *Orchestrator

	domesticDelay      time.Duration
	internationalDelay time.Duration
}

func NewTransferRouter(logger log.Logger, orchestrator *Orchestrator, domesticDelay, internationalDelay time.Duration) *TransferRouter {
	return &TransferRouter{
		logger:             logger,
		orchestrator:       orchestrator,
		domesticDelay:      domesticDelay,
		internationalDelay: internationalDelay,
	}
}

func (c *TransferRouter) RegisterRoutes(router *mux.Router) {
	router.Methods("POST").Path("/api/transfer/domestic").HandlerFunc(route.Simulate(c.domesticDelay, c.createDomesticTransfer()))
	router.Methods("POST").Path("/api/transfer/international").HandlerFunc(route.Simulate(c.internationalDelay, c.createInternationalTransfer()))
}

func (c *TransferRouter) createDomesticTransfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(c.logger, w, r)

		var req domesticTransferRequest
		if err := readRequest(r, &req); err != nil {
			responder.Problem(&route.Error{
				Code:    route.CodeValidationError,
				Message: "Validation failed",
			})
			return
		}

		resp, err := c.orchestrator.Submit(Request{
			Type:          model.DomesticTransfer,
			AccountNumber: req.AccountNumber,
			Amount:        req.Amount,
		})
		if err != nil {
			responder.Log("transfers", fmt.Sprintf("domestic transfer rejected: %v", err))
			responder.Problem(err)
			return
		}

		responder.Log("transfers", fmt.Sprintf("created domestic transfer transaction_id=%s", resp.TransactionID))
		responder.Success(resp)
	}
}

func (c *TransferRouter) createInternationalTransfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(c.logger, w, r)

		var req internationalTransferRequest
		if err := readRequest(r, &req); err != nil {
			responder.Problem(&route.Error{
				Code:    route.CodeValidationError,
				Message: "Validation failed",
			})
			return
		}

		resp, err := c.orchestrator.Submit(Request{
			Type:                model.InternationalTransfer,
			SourceAccountNumber: req.SourceAccountNumber,
			Amount:              req.Amount,
			IBAN:                req.IBAN,
			SwiftCode:           req.SwiftCode,
		})
		if err != nil {
			responder.Log("transfers", fmt.Sprintf("international transfer rejected: %v", err))
			responder.Problem(err)
			return
		}

		responder.Log("transfers", fmt.Sprintf("created international transfer transaction_id=%s", resp.TransactionID))
		responder.Success(resp)
	}
}

// readRequest decodes the (size limited) JSON body into dst.
func readRequest(r *http.Request, dst interface{}) error {
	bs, err := route.Read(r.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(bs))) == 0 {
		return fmt.Errorf("empty request body")
	}
	return json.Unmarshal(bs, dst)
}
