// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/consensus/voterecord"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus/queries"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/bloom"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/linked"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/rwcollection"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

const finalizedItemsFalsePositiveRate = 0.0000001

var (
	// ErrUnexpectedResponse is returned for responses that don't match any
	// outstanding poll. The poll may simply have timed out.
	ErrUnexpectedResponse     = errors.New("unexpected response")
	ErrInvalidResponseSize    = errors.New("invalid response size")
	ErrInvalidResponseContent = errors.New("invalid response content")
	ErrUnknownSessionKey      = errors.New("unknown session key")

	errMissingLog         = errors.New("missing logger")
	errMissingClock       = errors.New("missing clock")
	errMissingRegisterer  = errors.New("missing registerer")
	errMissingPeerManager = errors.New("missing peer manager")
	errMissingSender      = errors.New("missing sender")
	errNoSessionKey       = errors.New("no session key")
)

type voteRecords = linked.Hashmap[message.Inv, *voterecord.VoteRecord]

// Processor runs the polling rounds of avalanche pre-consensus. It keeps a
// vote record for every item being reconciled, periodically polls a stake
// weighted random node about them and turns the responses into status
// updates.
//
// Processor is safe for concurrent use. When several locks are held they are
// always acquired in this order: peer lock, vote records, queries.
type Processor struct {
	log     logging.Logger
	clock   *mockable.Clock
	rng     *sampler.RNG
	sender  Sender
	sources map[message.InvType]Source
	params  Parameters
	metrics *metrics

	sessionKey   *secp256k1.PrivateKey
	localProofID ids.ID

	peerLock sync.Mutex
	peers    *peers.Manager

	voteRecords *rwcollection.RWCollection[*voteRecords]
	queries     *queries.Registry
	round       atomic.Uint64

	finalizedItems *bloom.RollingFilter

	quorumEstablished atomic.Bool
	eventLoop         timer.EventLoop
}

func New(config Config) (*Processor, error) {
	switch {
	case config.Log == nil:
		return nil, errMissingLog
	case config.Clock == nil:
		return nil, errMissingClock
	case config.Registerer == nil:
		return nil, errMissingRegisterer
	case config.PeerManager == nil:
		return nil, errMissingPeerManager
	case config.Sender == nil:
		return nil, errMissingSender
	}
	if err := config.Params.Verify(); err != nil {
		return nil, err
	}

	m, err := newMetrics(config.Namespace, config.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	finalizedItems, err := bloom.NewRollingFilter(config.Params.FinalizedItemsFilterSize, finalizedItemsFalsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create finalized items filter: %w", err)
	}

	rng := config.RNG
	if rng == nil {
		rng = sampler.NewRNG()
	}
	sources := config.Sources
	if sources == nil {
		sources = make(map[message.InvType]Source)
	}

	return &Processor{
		log:            config.Log,
		clock:          config.Clock,
		rng:            rng,
		sender:         config.Sender,
		sources:        sources,
		params:         config.Params,
		metrics:        m,
		sessionKey:     config.SessionKey,
		localProofID:   config.LocalProofID,
		peers:          config.PeerManager,
		voteRecords:    rwcollection.New(linked.NewHashmap[message.Inv, *voterecord.VoteRecord]()),
		queries:        queries.NewRegistry(),
		finalizedItems: finalizedItems,
	}, nil
}

// lookup resolves [inv] into an item that is still worth polling. Recently
// finalized items never are.
func (p *Processor) lookup(inv message.Inv) (Source, Item, bool) {
	if p.finalizedItems.Contains(inv.ID) {
		return nil, nil, false
	}
	source, ok := p.sources[inv.Type]
	if !ok {
		return nil, nil, false
	}
	item, ok := source.Lookup(inv.ID)
	if !ok || !source.IsWorthPolling(item) {
		return nil, nil, false
	}
	return source, item, true
}

// AddToReconcile starts voting on [inv]. Returns false if the item is unknown,
// not worth polling or already being voted on.
func (p *Processor) AddToReconcile(inv message.Inv) bool {
	source, item, ok := p.lookup(inv)
	if !ok {
		return false
	}

	// The source is queried before the vote records are locked so it is free
	// to read the processor state.
	accepted := source.IsAccepted(item)
	seed := p.rng.Uint64()

	w := p.voteRecords.WriteView()
	defer w.Release()

	records := w.Get()
	if _, ok := records.Get(inv); ok {
		return false
	}
	records.Put(inv, voterecord.New(accepted, p.params.VoteParams, seed))
	p.metrics.trackedItems.Set(float64(records.Len()))
	return true
}

// getRecord calls [f] with the vote record of [inv] under the read lock.
// Returns false if [inv] isn't being voted on.
func (p *Processor) getRecord(inv message.Inv, f func(*voterecord.VoteRecord)) bool {
	r := p.voteRecords.ReadView()
	defer r.Release()

	vr, ok := r.Get().Get(inv)
	if !ok {
		return false
	}
	f(vr)
	return true
}

func (p *Processor) IsAccepted(inv message.Inv) bool {
	accepted := false
	p.getRecord(inv, func(vr *voterecord.VoteRecord) {
		accepted = vr.IsAccepted()
	})
	return accepted
}

// GetConfidence returns -1 if [inv] isn't being voted on.
func (p *Processor) GetConfidence(inv message.Inv) int {
	confidence := -1
	p.getRecord(inv, func(vr *voterecord.VoteRecord) {
		confidence = vr.GetConfidence()
	})
	return confidence
}

func (p *Processor) HasFinalized(inv message.Inv) bool {
	finalized := false
	p.getRecord(inv, func(vr *voterecord.VoteRecord) {
		finalized = vr.HasFinalized()
	})
	return finalized
}

// IsPolled returns true if [inv] is being voted on.
func (p *Processor) IsPolled(inv message.Inv) bool {
	return p.getRecord(inv, func(*voterecord.VoteRecord) {})
}

// IsRecentlyFinalized may return false positives.
func (p *Processor) IsRecentlyFinalized(id ids.ID) bool {
	return p.finalizedItems.Contains(id)
}

func (p *Processor) SetRecentlyFinalized(id ids.ID) {
	p.finalizedItems.Add(id)
}

func (p *Processor) ClearFinalizedItems() {
	p.finalizedItems.Reset()
}

// StartEventLoop starts polling every TimeStep. Returns false if the event
// loop is already running.
func (p *Processor) StartEventLoop(ctx context.Context) bool {
	if !p.eventLoop.Start(ctx, p.params.TimeStep, p.tick) {
		return false
	}
	p.log.Info("started event loop",
		zap.Duration("timeStep", p.params.TimeStep),
	)
	return true
}

// StopEventLoop waits for the current poll, if any, to complete. Returns
// false if the event loop wasn't running.
func (p *Processor) StopEventLoop() bool {
	if !p.eventLoop.Stop() {
		return false
	}
	p.log.Info("stopped event loop")
	return true
}

// WithPeerManager calls [f] with exclusive access to the peer manager.
func (p *Processor) WithPeerManager(f func(*peers.Manager)) {
	p.peerLock.Lock()
	defer p.peerLock.Unlock()

	f(p.peers)
}

// NodeDisconnected stops polling [nodeID].
func (p *Processor) NodeDisconnected(nodeID ids.NodeID) {
	p.peerLock.Lock()
	defer p.peerLock.Unlock()

	p.peers.RemoveNode(nodeID)
}

func (p *Processor) SessionPublicKey() *secp256k1.PublicKey {
	if p.sessionKey == nil {
		return nil
	}
	return p.sessionKey.PublicKey()
}

// SignResponse signs [r] with the session key of this node.
func (p *Processor) SignResponse(r *message.Response) (*message.SignedResponse, error) {
	if p.sessionKey == nil {
		return nil, errNoSessionKey
	}
	return message.SignResponse(p.sessionKey, r)
}

// Respond builds the answer to [poll] from the local preference of each item.
// Items that are unknown locally get an abstention.
func (p *Processor) Respond(poll *message.Poll, cooldown time.Duration) *message.Response {
	votes := make([]message.Vote, len(poll.Invs))
	for i, inv := range poll.Invs {
		votes[i] = message.Vote{
			Error: p.localVote(inv),
			ID:    inv.ID,
		}
	}
	return &message.Response{
		Round:    poll.Round,
		Cooldown: cooldownMilliseconds(cooldown),
		Votes:    votes,
	}
}

// cooldownMilliseconds saturates instead of wrapping around.
func cooldownMilliseconds(cooldown time.Duration) uint32 {
	ms := cooldown.Milliseconds()
	switch {
	case ms <= 0:
		return 0
	case ms >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(ms)
	}
}

const (
	voteYes     uint32 = 0
	voteNo      uint32 = 1
	voteUnknown uint32 = math.MaxUint32 // -1 as an int32
)

func (p *Processor) localVote(inv message.Inv) uint32 {
	source, ok := p.sources[inv.Type]
	if !ok {
		return voteUnknown
	}
	item, ok := source.Lookup(inv.ID)
	switch {
	case !ok:
		return voteUnknown
	case source.IsAccepted(item):
		return voteYes
	default:
		return voteNo
	}
}

// IsQuorumEstablished returns true once enough stake is known and connected
// for polls to be meaningful. Once reached, only the node count can make the
// quorum be lost again.
func (p *Processor) IsQuorumEstablished() bool {
	p.peerLock.Lock()
	defer p.peerLock.Unlock()

	if p.peers.GetNodeCount() < p.params.MinNodeCount {
		return false
	}
	if p.quorumEstablished.Load() {
		return true
	}

	total := p.peers.GetTotalPeersScore()
	connected := p.peers.GetConnectedPeersScore()

	// This node is always connected to its own proof.
	if p.localProofID != ids.Empty {
		p.peers.ForPeer(p.localProofID, func(peer peers.Peer) bool {
			if peer.NodeCount == 0 {
				connected += uint64(peer.Score())
			}
			return true
		})
	}

	if total < p.params.MinQuorumScore {
		return false
	}
	minConnected := uint64(math.Round(float64(total) * p.params.MinQuorumConnectedScoreRatio))
	if connected < minConnected {
		return false
	}

	p.quorumEstablished.Store(true)
	p.log.Info("quorum established",
		zap.Uint64("totalPeersScore", total),
		zap.Uint64("connectedPeersScore", connected),
	)
	return true
}

// tick runs a single polling round.
func (p *Processor) tick() {
	if !p.IsQuorumEstablished() {
		return
	}

	p.clearTimedoutRequests()

	// Make sure a node can be polled before reserving inflight slots.
	var nodeID ids.NodeID
	p.WithPeerManager(func(m *peers.Manager) {
		nodeID = m.SelectNode()
	})
	if nodeID == ids.NoNode {
		return
	}

	invs := p.getInvsForNextPoll(true)
	if len(invs) == 0 {
		return
	}

	p.peerLock.Lock()
	defer p.peerLock.Unlock()

	for nodeID != ids.NoNode {
		if p.sendPoll(nodeID, invs) {
			return
		}

		// Nodes that can't be reached are dropped so they get cleaned up
		// over time.
		p.peers.RemoveNode(nodeID)
		nodeID = p.peers.SelectNode()
	}

	// Nobody got the poll, so nothing is inflight.
	p.releaseInflight(invs)
}

// sendPoll registers a query and sends it. The query is removed if the poll
// couldn't be sent. Assumes the peer lock is held.
func (p *Processor) sendPoll(nodeID ids.NodeID, invs []message.Inv) bool {
	round := p.round.Add(1) - 1
	now := p.clock.Time()
	timeout := now.Add(p.params.QueryTimeout)

	p.queries.Insert(queries.Query{
		NodeID:  nodeID,
		Round:   round,
		Start:   now,
		Timeout: timeout,
		Invs:    invs,
	})
	p.peers.UpdateNextRequestTime(nodeID, timeout)

	err := p.sender.SendPoll(nodeID, &message.Poll{
		Round: round,
		Invs:  invs,
	})
	if err == nil {
		p.metrics.pollsSent.Inc()
		p.metrics.outstandingQueries.Set(float64(p.queries.Len()))
		p.log.Verbo("sent poll",
			zap.Stringer("nodeID", nodeID),
			zap.Uint64("round", round),
			zap.Int("numInvs", len(invs)),
		)
		return true
	}

	p.queries.Consume(nodeID, round)
	p.metrics.pollsFailed.Inc()
	p.log.Debug("failed to send poll",
		zap.Stringer("nodeID", nodeID),
		zap.Uint64("round", round),
		zap.Error(err),
	)
	return false
}

func (p *Processor) releaseInflight(invs []message.Inv) {
	r := p.voteRecords.ReadView()
	defer r.Release()

	records := r.Get()
	for _, inv := range invs {
		if vr, ok := records.Get(inv); ok {
			vr.ClearInflightRequest(1)
		}
	}
}

// clearTimedoutRequests drops the queries that timed out and releases the
// inflight slots they held.
func (p *Processor) clearTimedoutRequests() {
	timedOut := p.queries.Sweep(p.clock.Time())
	if len(timedOut) == 0 {
		return
	}
	p.metrics.outstandingQueries.Set(float64(p.queries.Len()))

	w := p.voteRecords.WriteView()
	defer w.Release()

	records := w.Get()
	for inv, count := range timedOut {
		p.metrics.timedOutInvs.Add(float64(count))
		if vr, ok := records.Get(inv); ok {
			vr.ClearInflightRequest(uint32(count))
		}
	}
}

// getInvsForNextPoll returns the newest items that can be polled, up to
// MaxElementPoll of them. Items no longer worth polling are dropped first.
// If [forPoll] is true, an inflight slot is reserved for each returned item.
func (p *Processor) getInvsForNextPoll(forPoll bool) []message.Inv {
	p.voteRecords.Write(func(records *voteRecords) {
		var drop []message.Inv
		it := records.NewIterator()
		for it.Next() {
			if _, _, ok := p.lookup(it.Key()); !ok {
				drop = append(drop, it.Key())
			}
		}
		for _, inv := range drop {
			records.Delete(inv)
		}
		p.metrics.trackedItems.Set(float64(records.Len()))
	})

	r := p.voteRecords.ReadView()
	defer r.Release()

	var invs []message.Inv
	it := r.Get().NewReverseIterator()
	for it.Next() && len(invs) < p.params.MaxElementPoll {
		vr := it.Value()
		shouldPoll := vr.ShouldPoll()
		if forPoll {
			shouldPoll = vr.RegisterPoll()
		}
		if shouldPoll {
			invs = append(invs, it.Key())
		}
	}
	return invs
}

// RegisterVotes processes the response of [nodeID] to one of our polls. The
// returned error describes why the response was dropped, see BanScore.
func (p *Processor) RegisterVotes(nodeID ids.NodeID, response *message.Response) ([]StatusUpdate, error) {
	now := p.clock.Time()

	// This is done before checking the round, so an old response can push
	// the next request time.
	p.WithPeerManager(func(m *peers.Manager) {
		cooldown := time.Duration(response.Cooldown) * time.Millisecond
		m.UpdateNextRequestTime(nodeID, now.Add(cooldown))
	})

	query, ok := p.queries.Consume(nodeID, response.Round)
	if !ok {
		p.metrics.invalidResponses.WithLabelValues(unexpectedReason).Inc()
		p.log.Verbo("dropping unexpected response",
			zap.Stringer("nodeID", nodeID),
			zap.Uint64("round", response.Round),
		)
		return nil, fmt.Errorf("%w from %s for round %d", ErrUnexpectedResponse, nodeID, response.Round)
	}
	p.metrics.outstandingQueries.Set(float64(p.queries.Len()))
	p.metrics.pollDuration.Observe(float64(now.Sub(query.Start).Milliseconds()))

	if len(response.Votes) != len(query.Invs) {
		p.releaseInflight(query.Invs)
		p.metrics.invalidResponses.WithLabelValues(sizeReason).Inc()
		p.log.Debug("dropping malformed response",
			zap.Stringer("nodeID", nodeID),
			zap.Int("numVotes", len(response.Votes)),
			zap.Int("numInvs", len(query.Invs)),
		)
		return nil, fmt.Errorf("%w: expected %d votes but got %d", ErrInvalidResponseSize, len(query.Invs), len(response.Votes))
	}
	for i, inv := range query.Invs {
		if inv.ID != response.Votes[i].ID {
			p.releaseInflight(query.Invs)
			p.metrics.invalidResponses.WithLabelValues(contentReason).Inc()
			p.log.Debug("dropping malformed response",
				zap.Stringer("nodeID", nodeID),
				zap.Int("index", i),
				zap.Stringer("expectedID", inv.ID),
				zap.Stringer("id", response.Votes[i].ID),
			)
			return nil, fmt.Errorf("%w: vote %d is for %s instead of %s", ErrInvalidResponseContent, i, response.Votes[i].ID, inv.ID)
		}
	}

	// Votes are only counted for items that can still be resolved.
	type vote struct {
		inv message.Inv
		err uint32
	}
	votes := make([]vote, 0, len(query.Invs))
	for i, inv := range query.Invs {
		if _, _, ok := p.lookup(inv); !ok {
			continue
		}
		votes = append(votes, vote{
			inv: inv,
			err: response.Votes[i].Error,
		})
	}

	var updates []StatusUpdate
	p.voteRecords.Write(func(records *voteRecords) {
		for _, v := range votes {
			vr, ok := records.Get(v.inv)
			if !ok {
				// Not voting on this item anymore.
				continue
			}

			p.metrics.votes.WithLabelValues(voteOutcome(v.err)).Inc()
			if !vr.RegisterVote(nodeID, v.err) {
				if vr.IsStale() {
					updates = append(updates, StatusUpdate{Inv: v.inv, Status: Stale})
					records.Delete(v.inv)
				}
				continue
			}

			if !vr.HasFinalized() {
				status := Rejected
				if vr.IsAccepted() {
					status = Accepted
				}
				updates = append(updates, StatusUpdate{Inv: v.inv, Status: status})
				continue
			}

			status := Invalid
			if vr.IsAccepted() {
				status = Finalized
			}
			updates = append(updates, StatusUpdate{Inv: v.inv, Status: status})
			records.Delete(v.inv)
		}
		p.metrics.trackedItems.Set(float64(records.Len()))
	})

	for _, update := range updates {
		p.metrics.statusUpdates.WithLabelValues(update.Status.String()).Inc()
		switch update.Status {
		case Finalized:
			p.finalizedItems.Add(update.Inv.ID)
			p.log.Debug("finalized item",
				zap.Stringer("inv", update.Inv),
			)
		case Invalid, Stale:
			p.log.Debug("dropped item",
				zap.Stringer("inv", update.Inv),
				zap.Stringer("status", update.Status),
			)
		}
	}
	return updates, nil
}

// RegisterSignedVotes checks that [response] was signed with the session key
// of [nodeID] before processing it.
func (p *Processor) RegisterSignedVotes(nodeID ids.NodeID, response *message.SignedResponse) ([]StatusUpdate, error) {
	var (
		key *secp256k1.PublicKey
		ok  bool
	)
	p.WithPeerManager(func(m *peers.Manager) {
		key, ok = m.GetNodePublicKey(nodeID)
	})
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrUnknownSessionKey, nodeID)
	}
	if err := message.VerifyResponse(key, response); err != nil {
		p.metrics.invalidResponses.WithLabelValues(signatureReason).Inc()
		p.log.Debug("dropping response with invalid signature",
			zap.Stringer("nodeID", nodeID),
			zap.Uint64("round", response.Response.Round),
		)
		return nil, err
	}
	return p.RegisterVotes(nodeID, &response.Response)
}

// BanScore returns how much the node that sent a response should be
// penalized for the error returned when processing it.
func BanScore(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidResponseSize),
		errors.Is(err, ErrInvalidResponseContent),
		errors.Is(err, message.ErrInvalidSignature):
		return 100
	default:
		return 0
	}
}
