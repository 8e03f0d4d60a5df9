// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"regexp"
	"strings"
	"time"

	moovhttp "github.com/moov-io/base/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// maxReadBytes is the number of bytes to read from a request body.
// It's intended to be used with an io.LimitReader
const maxReadBytes = 1 * 1024 * 1024

var (
	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

// Read consumes an io.Reader (wrapping with io.LimitReader)
// and returns either the resulting bytes or a non-nil error.
func Read(r io.Reader) ([]byte, error) {
	return ioutil.ReadAll(io.LimitReader(r, maxReadBytes))
}

type Responder struct {
	XRequestID string

	logger  log.Logger
	writer  http.ResponseWriter
	request *http.Request
	start   time.Time
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	return &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		writer:     w,
		request:    r,
		start:      time.Now(),
	}
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

// Success writes a 200 success envelope wrapping data.
func (r *Responder) Success(data interface{}) {
	if r == nil {
		return
	}
	r.respond(http.StatusOK, successResponse{
		Success: true,
		Data:    data,
	})
}

// Problem writes the error envelope for err. Typed *Error values keep their
// code, message and details; anything else is masked as INTERNAL_ERROR.
func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	xerr, ok := err.(*Error)
	if !ok {
		r.Log("error", err.Error())
		xerr = &Error{Code: CodeInternalError, Message: "Internal server error"}
	}
	r.respond(StatusCode(xerr.Code), errorResponse{
		Success: false,
		Error:   xerr.Message,
		Code:    xerr.Code,
		Details: xerr.Details,
	})
}

func (r *Responder) respond(status int, v interface{}) {
	name := fmt.Sprintf("%s-%s", strings.ToLower(r.request.Method), CleanPath(r.request.URL.Path))
	Histogram.With("route", name).Observe(time.Since(r.start).Seconds())

	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.writer.WriteHeader(status)
	json.NewEncoder(r.writer).Encode(v)
}

// Simulate wraps h with a fixed pause mimicking the upstream processing
// latency of the demo environment. Zero or negative delays pass through.
func Simulate(delay time.Duration, h http.HandlerFunc) http.HandlerFunc {
	if delay <= 0 {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		h(w, r)
	}
}

// NotFoundHandler responds to unmatched routes with the NOT_FOUND envelope.
func NotFoundHandler(logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(logger, w, r)
		responder.Problem(&Error{
			Code:    CodeNotFound,
			Message: "Endpoint not found",
		})
	})
}

var idRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out ID values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || idRegex.MatchString(parts[i]) {
			continue
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
