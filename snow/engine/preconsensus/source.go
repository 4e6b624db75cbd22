// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import "github.com/ava-labs/avalanche-preconsensus/ids"

// Item is something being voted on.
type Item interface {
	ID() ids.ID
}

// Source resolves the items of a single inventory type.
//
// Source methods may be called while the processor holds its internal locks.
// They must not call back into the processor.
type Source interface {
	// Lookup returns the item with [id], if it is known locally.
	Lookup(id ids.ID) (Item, bool)
	// IsWorthPolling returns false if the item should no longer be voted on.
	IsWorthPolling(item Item) bool
	// IsAccepted returns the local preference for the item.
	IsAccepted(item Item) bool
}
