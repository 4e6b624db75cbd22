// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

// Config wraps all the parameters needed for a processor
type Config struct {
	Log        logging.Logger
	Namespace  string
	Registerer prometheus.Registerer
	Clock      *mockable.Clock
	// RNG seeds the quorum filter of new vote records. Defaults to a randomly
	// seeded source.
	RNG *sampler.RNG

	// PeerManager is owned by the processor once it is created. It must only
	// be accessed through WithPeerManager afterwards.
	PeerManager *peers.Manager
	Sender      Sender
	Sources     map[message.InvType]Source

	// SessionKey signs the responses sent to other nodes. It may be nil if
	// this node never answers polls.
	SessionKey *secp256k1.PrivateKey
	// LocalProofID is considered connected even when no other node is
	// attached to it. ids.Empty means this node has no proof.
	LocalProofID ids.ID

	Params Parameters
}
