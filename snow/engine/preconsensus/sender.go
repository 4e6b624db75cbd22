// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
)

// Sender delivers polls to other nodes.
//
// SendPoll is called while the processor holds its peer lock. The response
// must be handed back to the processor asynchronously.
type Sender interface {
	// SendPoll returns an error if [nodeID] can't be reached anymore.
	SendPoll(nodeID ids.NodeID, poll *message.Poll) error
}
