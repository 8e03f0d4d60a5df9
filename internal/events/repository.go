// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"errors"
	"sync"

	"github.com/moov-io/base"
)

var ErrNotFound = errors.New("event not found")

type Repository interface {
	GetEvent(eventID EventID) (*Event, error)

	// GetEvents returns the full audit history, newest first.
	GetEvents() ([]*Event, error)

	WriteEvent(event *Event) error
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

type InMemoryRepo struct {
	mtx    sync.RWMutex
	events []*Event
}

func (r *InMemoryRepo) WriteEvent(event *Event) error {
	if event == nil {
		return errors.New("nil Event")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if event.ID == "" {
		event.ID = EventID(base.ID())
	}
	if event.Created.IsZero() {
		event.Created = base.Now()
	}
	r.events = append(r.events, event)
	return nil
}

func (r *InMemoryRepo) GetEvent(eventID EventID) (*Event, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	for i := range r.events {
		if r.events[i].ID == eventID {
			return r.events[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepo) GetEvents() ([]*Event, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]*Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
