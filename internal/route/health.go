// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/moov-io/base"
	moovhttp "github.com/moov-io/base/http"
	"github.com/unifiedpay/transferd/internal/version"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp base.Time `json:"timestamp"`
	Server    string    `json:"server"`
}

// AddHealthRoute registers 'GET /api/health'. The response is unwrapped, not
// an envelope, so probes stay trivial to parse.
func AddHealthRoute(logger log.Logger, r *mux.Router) {
	r.Methods("GET").Path("/api/health").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestID := moovhttp.GetRequestID(r); requestID != "" {
			logger.Log("health", "health check", "requestID", requestID)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthResponse{
			Status:    "healthy",
			Timestamp: base.Now(),
			Server:    fmt.Sprintf("Unified Payments API %s", version.Version),
		})
	})
}
