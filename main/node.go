// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus/blockindex"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

const (
	inboxSize              = 1024
	invalidBlockFilterSize = 1024
)

var _ preconsensus.Sender = (*sender)(nil)

type envelope struct {
	from ids.NodeID
	// Exactly one of [poll] or [response] is set.
	poll     []byte
	response []byte
}

// sender delivers the polls of a node to the inbox of the polled node.
type sender struct {
	net  *network
	from ids.NodeID
}

func (s *sender) SendPoll(nodeID ids.NodeID, poll *message.Poll) error {
	to, err := s.net.node(nodeID)
	if err != nil {
		return err
	}
	from, err := s.net.node(s.from)
	if err != nil {
		return err
	}
	b, err := from.creator.Poll(poll)
	if err != nil {
		return err
	}
	// A full inbox behaves like a lost message, the poll will time out.
	to.deliver(envelope{
		from: s.from,
		poll: b,
	})
	return nil
}

type node struct {
	id         ids.NodeID
	log        logging.Logger
	net        *network
	proof      *peers.Proof
	sessionKey *secp256k1.PrivateKey

	index     *blockindex.Index
	processor *preconsensus.Processor
	creator   message.Creator

	inbox chan envelope
}

func newNode(
	id ids.NodeID,
	log logging.Logger,
	net *network,
	master *secp256k1.PrivateKey,
	sessionKey *secp256k1.PrivateKey,
	genesisID ids.ID,
	registerer prometheus.Registerer,
) (*node, error) {
	proof, err := peers.NewProof(master, 0, 0, proofScore(id))
	if err != nil {
		return nil, fmt.Errorf("couldn't create proof: %w", err)
	}
	index, err := blockindex.New(genesisID, invalidBlockFilterSize)
	if err != nil {
		return nil, err
	}
	creator, err := message.NewCreator("", registerer, net.params.MaxElementPoll)
	if err != nil {
		return nil, err
	}
	return &node{
		id:         id,
		log:        log,
		net:        net,
		proof:      proof,
		sessionKey: sessionKey,
		index:      index,
		creator:    creator,
		inbox:      make(chan envelope, inboxSize),
	}, nil
}

// proofScore spreads the stake unevenly between the nodes.
func proofScore(id ids.NodeID) uint32 {
	return 100 * (uint32(id)%4 + 1)
}

// initProcessor connects the node to every other node of the network.
func (n *node) initProcessor(registerer prometheus.Registerer, manager *peers.Manager, clock *mockable.Clock, rng *sampler.RNG) error {
	for _, other := range n.net.nodes {
		if other.id == n.id {
			continue
		}
		err := manager.RegisterProof(other.proof)
		if err != nil && !errors.Is(err, peers.ErrAlreadyRegistered) {
			return fmt.Errorf("couldn't register proof of %s: %w", other.id, err)
		}
		manager.AddNode(other.id, other.proof.ID(), other.sessionKey.PublicKey())
	}

	processor, err := preconsensus.New(preconsensus.Config{
		Log:          n.log,
		Registerer:   registerer,
		Clock:        clock,
		RNG:          rng,
		PeerManager:  manager,
		Sender:       &sender{net: n.net, from: n.id},
		Sources:      map[message.InvType]preconsensus.Source{message.MsgBlock: n.index},
		SessionKey:   n.sessionKey,
		LocalProofID: n.proof.ID(),
		Params:       n.net.params,
	})
	if err != nil {
		return err
	}
	n.processor = processor
	return nil
}

func (n *node) deliver(e envelope) {
	select {
	case n.inbox <- e:
	default:
		n.log.Debug("dropping message",
			zap.Stringer("from", e.from),
		)
	}
}

// run handles incoming messages until [ctx] is cancelled.
func (n *node) run(ctx context.Context) error {
	if !n.processor.StartEventLoop(ctx) {
		return fmt.Errorf("event loop of %s already running", n.id)
	}
	defer n.processor.StopEventLoop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-n.inbox:
			if e.poll != nil {
				n.handlePoll(e.from, e.poll)
			} else {
				n.handleResponse(e.from, e.response)
			}
		}
	}
}

func (n *node) handlePoll(from ids.NodeID, b []byte) {
	poll, err := n.creator.ParsePoll(b)
	if err != nil {
		n.log.Debug("dropping malformed poll",
			zap.Stringer("from", from),
			zap.Error(err),
		)
		return
	}

	response := n.processor.Respond(poll, n.net.cooldown)
	responseBytes, err := n.creator.SignedResponse(n.sessionKey, response)
	if err != nil {
		n.log.Error("couldn't sign response",
			zap.Error(err),
		)
		return
	}

	if n.net.dropResponse() {
		return
	}
	to, err := n.net.node(from)
	if err != nil {
		return
	}
	to.deliver(envelope{
		from:     n.id,
		response: responseBytes,
	})
}

func (n *node) handleResponse(from ids.NodeID, b []byte) {
	response, err := n.creator.ParseSignedResponse(b)
	if err != nil {
		n.log.Debug("dropping malformed response",
			zap.Stringer("from", from),
			zap.Error(err),
		)
		return
	}

	updates, err := n.processor.RegisterSignedVotes(from, response)
	if err != nil {
		if score := preconsensus.BanScore(err); score > 0 {
			n.log.Warn("misbehaving node",
				zap.Stringer("from", from),
				zap.Int("banScore", score),
				zap.Error(err),
			)
		} else {
			n.log.Verbo("dropping response",
				zap.Stringer("from", from),
				zap.Error(err),
			)
		}
		return
	}

	n.index.Apply(updates)
	for _, update := range updates {
		n.log.Debug("status update",
			zap.Stringer("inv", update.Inv),
			zap.Stringer("status", update.Status),
		)
		if update.Status == preconsensus.Invalid {
			n.log.Info("block invalidated",
				zap.Stringer("blkID", update.Inv.ID),
			)
		}
	}
}

// done returns true once [last] is final and nothing else is being voted on.
func (n *node) done(last ids.ID) bool {
	tip, ok := n.index.FinalizationTip()
	if !ok || tip.ID() != last {
		return false
	}
	for _, inv := range n.net.invs {
		if n.processor.IsPolled(inv) {
			return false
		}
	}
	return true
}
