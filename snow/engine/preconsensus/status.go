// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"fmt"

	"github.com/ava-labs/avalanche-preconsensus/message"
)

// Status is the outcome reported for an item after a response was processed.
type Status uint8

const (
	// Invalid items were finalized as rejected.
	Invalid Status = iota
	// Rejected items flipped to rejected.
	Rejected
	// Accepted items flipped to accepted.
	Accepted
	// Finalized items were finalized as accepted.
	Finalized
	// Stale items gathered too many votes without converging and are no
	// longer polled.
	Stale
)

var statuses = []Status{
	Invalid,
	Rejected,
	Accepted,
	Finalized,
	Stale,
}

func (s Status) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case Finalized:
		return "finalized"
	case Stale:
		return "stale"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Decided returns true if the item was removed from polling because of this
// status.
func (s Status) Decided() bool {
	return s == Invalid || s == Finalized || s == Stale
}

type StatusUpdate struct {
	Inv    message.Inv
	Status Status
}
