// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import "strconv"

const (
	// NoNode is returned when no node is available to be queried.
	NoNode NodeID = -1

	// NoPeer is returned when no peer could be selected.
	NoPeer PeerID = ^PeerID(0)
)

// NodeID identifies a single connection to a remote node. Several nodes may
// share the same stake-backed peer.
type NodeID int64

func (id NodeID) String() string {
	return "Node-" + strconv.FormatInt(int64(id), 10)
}

// PeerID identifies a peer, i.e. a registered proof with at least one node
// attached to it.
type PeerID uint32

func (id PeerID) String() string {
	return "Peer-" + strconv.FormatUint(uint64(id), 10)
}
