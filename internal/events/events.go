// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package events keeps an audit history of transfer submissions. Every
// terminal state, accepted or rejected, writes one Event. The log is
// observability only: nothing reads it back into transfer decisions.
package events

import (
	"github.com/moov-io/base"
)

type EventID string

type Event struct {
	ID      EventID   `json:"id"`
	Topic   string    `json:"topic"`
	Message string    `json:"message"`
	Type    EventType `json:"type"`
	Created base.Time `json:"created"`

	Metadata map[string]string `json:"metadata"`
}

type EventType string

const (
	TransferEvent EventType = "Transfer"
)
