// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"net/http"

	"github.com/unifiedpay/transferd/internal/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

func AddRoutes(logger log.Logger, r *mux.Router, eventRepo Repository) {
	r.Methods("GET").Path("/api/events").HandlerFunc(getEvents(logger, eventRepo))
	r.Methods("GET").Path("/api/events/{eventID}").HandlerFunc(getEvent(logger, eventRepo))
}

func getEvents(logger log.Logger, eventRepo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		events, err := eventRepo.GetEvents()
		if err != nil {
			responder.Problem(err)
			return
		}
		responder.Success(events)
	}
}

func getEvent(logger log.Logger, eventRepo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		eventID := getEventID(r)
		if eventID == "" {
			responder.Problem(&route.Error{Code: route.CodeNotFound, Message: "Event not found"})
			return
		}

		event, err := eventRepo.GetEvent(eventID)
		if err != nil {
			responder.Problem(&route.Error{Code: route.CodeNotFound, Message: "Event not found"})
			return
		}
		responder.Success(event)
	}
}

// getEventID extracts the EventID from the incoming request.
func getEventID(r *http.Request) EventID {
	v, ok := mux.Vars(r)["eventID"]
	if !ok {
		return EventID("")
	}
	return EventID(v)
}
