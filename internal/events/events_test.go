// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

func TestRepository(t *testing.T) {
	repo := NewInMemoryRepo()

	if err := repo.WriteEvent(nil); err == nil {
		t.Error("expected error")
	}

	first := &Event{Topic: "domestic transfer", Message: "accepted", Type: TransferEvent}
	if err := repo.WriteEvent(first); err != nil {
		t.Fatal(err.Error())
	}
	if first.ID == "" || first.Created.IsZero() {
		t.Errorf("got %#v", first)
	}

	second := &Event{Topic: "international transfer", Message: "rejected", Type: TransferEvent}
	if err := repo.WriteEvent(second); err != nil {
		t.Fatal(err.Error())
	}

	// newest first
	evts, err := repo.GetEvents()
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(evts) != 2 || evts[0].ID != second.ID {
		t.Errorf("got %#v", evts)
	}

	evt, err := repo.GetEvent(first.ID)
	if err != nil {
		t.Fatal(err.Error())
	}
	if evt.Message != "accepted" {
		t.Errorf("got %q", evt.Message)
	}

	if _, err := repo.GetEvent(EventID("missing")); err != ErrNotFound {
		t.Errorf("got %v", err)
	}
}

func TestEvents__routes(t *testing.T) {
	repo := NewInMemoryRepo()
	event := &Event{Topic: "domestic transfer", Message: "accepted", Type: TransferEvent}
	if err := repo.WriteEvent(event); err != nil {
		t.Fatal(err.Error())
	}

	router := mux.NewRouter()
	AddRoutes(log.NewNopLogger(), router, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/events", nil))
	if w.Code != http.StatusOK {
		t.Errorf("got %d", w.Code)
	}
	var listWrapper struct {
		Success bool     `json:"success"`
		Data    []*Event `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&listWrapper); err != nil {
		t.Fatal(err.Error())
	}
	if len(listWrapper.Data) != 1 {
		t.Errorf("got %#v", listWrapper.Data)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/events/"+string(event.ID), nil))
	if w.Code != http.StatusOK {
		t.Errorf("got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/events/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("got %d", w.Code)
	}
}
