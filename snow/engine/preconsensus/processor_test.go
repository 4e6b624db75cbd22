// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/consensus/voterecord"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

// Upper bound on the rounds any test needs to reach a decision.
const maxTestRounds = 1000

var errUnreachable = errors.New("unreachable")

type testItem struct {
	id ids.ID
}

func (i *testItem) ID() ids.ID {
	return i.id
}

type testSource struct {
	lock     sync.Mutex
	items    map[ids.ID]*testItem
	accepted map[ids.ID]bool
	ignored  map[ids.ID]bool
}

func newTestSource() *testSource {
	return &testSource{
		items:    make(map[ids.ID]*testItem),
		accepted: make(map[ids.ID]bool),
		ignored:  make(map[ids.ID]bool),
	}
}

func (s *testSource) add(accepted bool) message.Inv {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := ids.GenerateTestID()
	s.items[id] = &testItem{id: id}
	s.accepted[id] = accepted
	return message.NewBlockInv(id)
}

func (s *testSource) ignore(id ids.ID) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.ignored[id] = true
}

func (s *testSource) Lookup(id ids.ID) (Item, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	item, ok := s.items[id]
	return item, ok
}

func (s *testSource) IsWorthPolling(item Item) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return !s.ignored[item.ID()]
}

func (s *testSource) IsAccepted(item Item) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.accepted[item.ID()]
}

type sentPoll struct {
	nodeID ids.NodeID
	poll   *message.Poll
}

type testEnv struct {
	processor   *Processor
	source      *testSource
	clock       *mockable.Clock
	sender      *MockSender
	sessionKeys map[ids.NodeID]*secp256k1.PrivateKey
	polls       []sentPoll
}

func testParameters() Parameters {
	params := DefaultParameters
	params.MinNodeCount = 1
	params.VoteParams.FinalizationScore = 8
	return params
}

// newTestEnv creates a processor connected to [numNodes] nodes, each backed
// by its own proof.
func newTestEnv(t *testing.T, params Parameters, numNodes int) *testEnv {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	clock := &mockable.Clock{}
	clock.Set(time.Unix(1_000_000, 0))
	rng := sampler.NewDeterministicRNG(0)

	env := &testEnv{
		source:      newTestSource(),
		clock:       clock,
		sender:      NewMockSender(ctrl),
		sessionKeys: make(map[ids.NodeID]*secp256k1.PrivateKey),
	}

	manager := peers.NewManager(logging.NoLog{}, clock, rng)
	for i := 0; i < numNodes; i++ {
		master, err := secp256k1.NewPrivateKey()
		require.NoError(err)
		proof, err := peers.NewProof(master, 0, 0, 100)
		require.NoError(err)
		require.NoError(manager.RegisterProof(proof))

		sessionKey, err := secp256k1.NewPrivateKey()
		require.NoError(err)
		nodeID := ids.NodeID(i)
		require.True(manager.AddNode(nodeID, proof.ID(), sessionKey.PublicKey()))
		env.sessionKeys[nodeID] = sessionKey
	}

	sessionKey, err := secp256k1.NewPrivateKey()
	require.NoError(err)

	env.processor, err = New(Config{
		Log:         logging.NoLog{},
		Registerer:  prometheus.NewRegistry(),
		Clock:       clock,
		RNG:         rng,
		PeerManager: manager,
		Sender:      env.sender,
		Sources: map[message.InvType]Source{
			message.MsgBlock: env.source,
		},
		SessionKey: sessionKey,
		Params:     params,
	})
	require.NoError(err)
	return env
}

// expectPolls records every poll and answers [err] to each send.
func (e *testEnv) expectPolls(err error) {
	e.sender.EXPECT().SendPoll(gomock.Any(), gomock.Any()).DoAndReturn(
		func(nodeID ids.NodeID, poll *message.Poll) error {
			e.polls = append(e.polls, sentPoll{
				nodeID: nodeID,
				poll:   poll,
			})
			return err
		},
	).AnyTimes()
}

func (e *testEnv) lastPoll() sentPoll {
	return e.polls[len(e.polls)-1]
}

// respond answers [poll] with the vote returned by [vote] for each item.
func respond(poll *message.Poll, vote func(message.Inv) uint32) *message.Response {
	votes := make([]message.Vote, len(poll.Invs))
	for i, inv := range poll.Invs {
		votes[i] = message.Vote{
			Error: vote(inv),
			ID:    inv.ID,
		}
	}
	return &message.Response{
		Round: poll.Round,
		Votes: votes,
	}
}

func (e *testEnv) inflight(inv message.Inv) int {
	inflight := -1
	e.processor.getRecord(inv, func(vr *voterecord.VoteRecord) {
		inflight = vr.Inflight()
	})
	return inflight
}

func TestNewMissingDependencies(t *testing.T) {
	manager := peers.NewManager(logging.NoLog{}, &mockable.Clock{}, sampler.NewRNG())
	ctrl := gomock.NewController(t)

	valid := func() Config {
		return Config{
			Log:         logging.NoLog{},
			Registerer:  prometheus.NewRegistry(),
			Clock:       &mockable.Clock{},
			PeerManager: manager,
			Sender:      NewMockSender(ctrl),
			Params:      DefaultParameters,
		}
	}

	tests := []struct {
		name        string
		update      func(*Config)
		expectedErr error
	}{
		{
			name:        "valid",
			update:      func(*Config) {},
			expectedErr: nil,
		},
		{
			name:        "no logger",
			update:      func(c *Config) { c.Log = nil },
			expectedErr: errMissingLog,
		},
		{
			name:        "no clock",
			update:      func(c *Config) { c.Clock = nil },
			expectedErr: errMissingClock,
		},
		{
			name:        "no registerer",
			update:      func(c *Config) { c.Registerer = nil },
			expectedErr: errMissingRegisterer,
		},
		{
			name:        "no peer manager",
			update:      func(c *Config) { c.PeerManager = nil },
			expectedErr: errMissingPeerManager,
		},
		{
			name:        "no sender",
			update:      func(c *Config) { c.Sender = nil },
			expectedErr: errMissingSender,
		},
		{
			name:        "invalid parameters",
			update:      func(c *Config) { c.Params.MaxElementPoll = 0 },
			expectedErr: ErrParametersInvalid,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := valid()
			test.update(&config)
			_, err := New(config)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestAddToReconcile(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 1)
	p := env.processor

	accepted := env.source.add(true)
	rejected := env.source.add(false)
	unknown := message.NewBlockInv(ids.GenerateTestID())
	ignored := env.source.add(true)
	env.source.ignore(ignored.ID)
	wrongType := message.Inv{Type: message.MsgTx, ID: accepted.ID}

	require.True(p.AddToReconcile(accepted))
	require.False(p.AddToReconcile(accepted))
	require.True(p.AddToReconcile(rejected))
	require.False(p.AddToReconcile(unknown))
	require.False(p.AddToReconcile(ignored))
	require.False(p.AddToReconcile(wrongType))

	require.True(p.IsPolled(accepted))
	require.True(p.IsAccepted(accepted))
	require.Zero(p.GetConfidence(accepted))
	require.False(p.HasFinalized(accepted))

	require.True(p.IsPolled(rejected))
	require.False(p.IsAccepted(rejected))

	require.False(p.IsPolled(unknown))
	require.False(p.IsAccepted(unknown))
	require.Equal(-1, p.GetConfidence(unknown))
	require.False(p.HasFinalized(unknown))
}

func TestGetInvsForNextPoll(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	env := newTestEnv(t, params, 1)
	p := env.processor

	invs := make([]message.Inv, params.MaxElementPoll+4)
	for i := range invs {
		invs[i] = env.source.add(true)
		require.True(p.AddToReconcile(invs[i]))
	}

	// The newest items come first.
	expected := make([]message.Inv, 0, params.MaxElementPoll)
	for i := len(invs) - 1; len(expected) < params.MaxElementPoll; i-- {
		expected = append(expected, invs[i])
	}
	require.Equal(expected, p.getInvsForNextPoll(false))
	for _, inv := range invs {
		require.Zero(env.inflight(inv))
	}

	// Items that aren't worth polling anymore are dropped.
	newest := invs[len(invs)-1]
	env.source.ignore(newest.ID)
	polled := p.getInvsForNextPoll(true)
	require.Len(polled, params.MaxElementPoll)
	require.NotContains(polled, newest)
	require.False(p.IsPolled(newest))
	for _, inv := range polled {
		require.Equal(1, env.inflight(inv))
	}
	require.Zero(env.inflight(invs[0]))
}

func TestGetInvsForNextPollInflightCap(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.VoteParams.MaxInflightPoll = 2
	env := newTestEnv(t, params, 1)
	p := env.processor

	inv := env.source.add(true)
	require.True(p.AddToReconcile(inv))

	require.Equal([]message.Inv{inv}, p.getInvsForNextPoll(true))
	require.Equal([]message.Inv{inv}, p.getInvsForNextPoll(true))
	require.Empty(p.getInvsForNextPoll(true))
	require.Empty(p.getInvsForNextPoll(false))
	require.Equal(2, env.inflight(inv))
}

func TestQuorumEstablished(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.MinNodeCount = 4
	params.MinQuorumScore = 400
	params.MinQuorumConnectedScoreRatio = 0.5
	env := newTestEnv(t, params, 3)
	p := env.processor

	// Not enough nodes.
	require.False(p.IsQuorumEstablished())

	p.WithPeerManager(func(m *peers.Manager) {
		master, err := secp256k1.NewPrivateKey()
		require.NoError(err)
		proof, err := peers.NewProof(master, 0, 0, 100)
		require.NoError(err)
		require.NoError(m.RegisterProof(proof))
		require.True(m.AddNode(3, proof.ID(), nil))
	})
	require.True(p.IsQuorumEstablished())

	// The score requirements are latched.
	p.WithPeerManager(func(m *peers.Manager) {
		master, err := secp256k1.NewPrivateKey()
		require.NoError(err)
		proof, err := peers.NewProof(master, 0, 0, 10_000)
		require.NoError(err)
		require.NoError(m.RegisterProof(proof))
	})
	require.True(p.IsQuorumEstablished())

	// The node count isn't.
	p.NodeDisconnected(3)
	require.False(p.IsQuorumEstablished())
}

func TestQuorumRequiresConnectedScore(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.MinQuorumConnectedScoreRatio = 0.8
	env := newTestEnv(t, params, 1)
	p := env.processor

	var proofID ids.ID
	p.WithPeerManager(func(m *peers.Manager) {
		master, err := secp256k1.NewPrivateKey()
		require.NoError(err)
		proof, err := peers.NewProof(master, 0, 0, 100)
		require.NoError(err)
		require.NoError(m.RegisterProof(proof))
		proofID = proof.ID()
	})

	// Only half of the score is connected.
	require.False(p.IsQuorumEstablished())

	// The local proof counts as connected.
	p.localProofID = proofID
	require.True(p.IsQuorumEstablished())
}

func TestTickWithoutQuorum(t *testing.T) {
	params := testParameters()
	params.MinNodeCount = 2
	env := newTestEnv(t, params, 1)

	// The sender must not be called.
	require.True(t, env.processor.AddToReconcile(env.source.add(true)))
	env.processor.tick()
}

func TestPollAndFinalize(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	env := newTestEnv(t, params, 16)
	env.expectPolls(nil)
	p := env.processor

	var (
		acceptedInv = env.source.add(true)
		flippedInv  = env.source.add(false)
		invalidInv  = env.source.add(true)
	)
	for _, inv := range []message.Inv{acceptedInv, flippedInv, invalidInv} {
		require.True(p.AddToReconcile(inv))
	}
	vote := func(inv message.Inv) uint32 {
		if inv == invalidInv {
			return 1
		}
		return 0
	}

	statuses := make(map[message.Inv][]Status)
	for i := 0; i < maxTestRounds && (p.IsPolled(acceptedInv) || p.IsPolled(flippedInv) || p.IsPolled(invalidInv)); i++ {
		p.tick()
		require.Len(env.polls, i+1)

		sent := env.lastPoll()
		updates, err := p.RegisterVotes(sent.nodeID, respond(sent.poll, vote))
		require.NoError(err)
		for _, update := range updates {
			statuses[update.Inv] = append(statuses[update.Inv], update.Status)
		}
	}

	require.Equal([]Status{Finalized}, statuses[acceptedInv])
	require.Equal([]Status{Accepted, Finalized}, statuses[flippedInv])
	require.Equal([]Status{Rejected, Invalid}, statuses[invalidInv])

	require.True(p.IsRecentlyFinalized(acceptedInv.ID))
	require.True(p.IsRecentlyFinalized(flippedInv.ID))
	require.Zero(p.queries.Len())

	// Recently finalized items are not polled again.
	require.False(p.AddToReconcile(acceptedInv))

	p.ClearFinalizedItems()
	require.False(p.IsRecentlyFinalized(acceptedInv.ID))
	require.True(p.AddToReconcile(acceptedInv))
}

func TestStaleItem(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.VoteParams.StaleVoteThreshold = 4
	params.VoteParams.StaleVoteFactor = 1
	env := newTestEnv(t, params, 16)
	env.expectPolls(nil)
	p := env.processor

	inv := env.source.add(true)
	require.True(p.AddToReconcile(inv))

	abstain := func(message.Inv) uint32 {
		return math.MaxUint32
	}

	var statuses []Status
	for i := 0; i < maxTestRounds && p.IsPolled(inv); i++ {
		p.tick()
		sent := env.lastPoll()
		updates, err := p.RegisterVotes(sent.nodeID, respond(sent.poll, abstain))
		require.NoError(err)
		for _, update := range updates {
			statuses = append(statuses, update.Status)
		}
	}
	require.Equal([]Status{Stale}, statuses)
	require.False(p.IsRecentlyFinalized(inv.ID))
}

func TestRegisterVotesErrors(t *testing.T) {
	type test struct {
		name          string
		response      func(*message.Poll) *message.Response
		expectedErr   error
		expectedScore int
	}
	yes := func(message.Inv) uint32 { return 0 }
	tests := []test{
		{
			name: "unknown round",
			response: func(poll *message.Poll) *message.Response {
				r := respond(poll, yes)
				r.Round++
				return r
			},
			expectedErr:   ErrUnexpectedResponse,
			expectedScore: 0,
		},
		{
			name: "missing vote",
			response: func(poll *message.Poll) *message.Response {
				r := respond(poll, yes)
				r.Votes = r.Votes[1:]
				return r
			},
			expectedErr:   ErrInvalidResponseSize,
			expectedScore: 100,
		},
		{
			name: "wrong item",
			response: func(poll *message.Poll) *message.Response {
				r := respond(poll, yes)
				r.Votes[0].ID = ids.GenerateTestID()
				return r
			},
			expectedErr:   ErrInvalidResponseContent,
			expectedScore: 100,
		},
		{
			name: "swapped items",
			response: func(poll *message.Poll) *message.Response {
				r := respond(poll, yes)
				r.Votes[0], r.Votes[1] = r.Votes[1], r.Votes[0]
				return r
			},
			expectedErr:   ErrInvalidResponseContent,
			expectedScore: 100,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			env := newTestEnv(t, testParameters(), 1)
			env.expectPolls(nil)
			p := env.processor

			invs := []message.Inv{env.source.add(true), env.source.add(true)}
			for _, inv := range invs {
				require.True(p.AddToReconcile(inv))
			}

			p.tick()
			require.Len(env.polls, 1)
			sent := env.lastPoll()

			updates, err := p.RegisterVotes(sent.nodeID, test.response(sent.poll))
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expectedScore, BanScore(err))
			require.Empty(updates)

			// A rejected response never counts.
			for _, inv := range invs {
				require.Zero(p.GetConfidence(inv))
			}
		})
	}
}

func TestResponseTwice(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 1)
	env.expectPolls(nil)
	p := env.processor

	require.True(p.AddToReconcile(env.source.add(true)))
	p.tick()
	sent := env.lastPoll()
	response := respond(sent.poll, func(message.Inv) uint32 { return 0 })

	_, err := p.RegisterVotes(sent.nodeID, response)
	require.NoError(err)

	_, err = p.RegisterVotes(sent.nodeID, response)
	require.ErrorIs(err, ErrUnexpectedResponse)

	// The round is bound to the node that was polled.
	p.tick()
	sent = env.lastPoll()
	_, err = p.RegisterVotes(sent.nodeID+1, respond(sent.poll, func(message.Inv) uint32 { return 0 }))
	require.ErrorIs(err, ErrUnexpectedResponse)
}

func TestQueryTimeoutReleasesInflight(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.VoteParams.MaxInflightPoll = 1
	env := newTestEnv(t, params, 4)
	env.expectPolls(nil)
	p := env.processor

	inv := env.source.add(true)
	require.True(p.AddToReconcile(inv))

	p.tick()
	require.Len(env.polls, 1)
	require.Equal(1, env.inflight(inv))
	first := env.lastPoll()

	// Nothing left to poll.
	p.tick()
	require.Len(env.polls, 1)

	// The query is still valid right before its timeout.
	env.clock.Advance(params.QueryTimeout - time.Millisecond)
	p.tick()
	require.Len(env.polls, 1)
	require.Equal(1, p.queries.Len())

	// It expires once its timeout is reached.
	env.clock.Advance(time.Millisecond)
	p.tick()
	require.Len(env.polls, 2)
	require.Equal(1, env.inflight(inv))
	require.Equal(1, p.queries.Len())
	require.Equal(float64(1), testutil.ToFloat64(p.metrics.timedOutInvs))

	// The late response is dropped without penalty.
	_, err := p.RegisterVotes(first.nodeID, respond(first.poll, func(message.Inv) uint32 { return 0 }))
	require.ErrorIs(err, ErrUnexpectedResponse)
	require.Zero(BanScore(err))
}

func TestSendFailureTriesNextNode(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 4)
	p := env.processor

	var attempts []ids.NodeID
	gomock.InOrder(
		env.sender.EXPECT().SendPoll(gomock.Any(), gomock.Any()).DoAndReturn(
			func(nodeID ids.NodeID, _ *message.Poll) error {
				attempts = append(attempts, nodeID)
				return errUnreachable
			},
		),
		env.sender.EXPECT().SendPoll(gomock.Any(), gomock.Any()).DoAndReturn(
			func(nodeID ids.NodeID, _ *message.Poll) error {
				attempts = append(attempts, nodeID)
				return nil
			},
		),
	)

	inv := env.source.add(true)
	require.True(p.AddToReconcile(inv))
	p.tick()

	require.Len(attempts, 2)
	require.NotEqual(attempts[0], attempts[1])
	require.Equal(1, env.inflight(inv))
	require.Equal(1, p.queries.Len())

	p.WithPeerManager(func(m *peers.Manager) {
		require.Equal(3, m.GetNodeCount())
		_, ok := m.GetPeerID(attempts[0])
		require.False(ok)
	})
}

func TestSendFailureReleasesInflight(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 2)
	env.expectPolls(errUnreachable)
	p := env.processor

	inv := env.source.add(true)
	require.True(p.AddToReconcile(inv))
	p.tick()

	require.Len(env.polls, 2)
	require.Zero(env.inflight(inv))
	require.Zero(p.queries.Len())
	p.WithPeerManager(func(m *peers.Manager) {
		require.Zero(m.GetNodeCount())
	})
}

func TestRegisterSignedVotes(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 1)
	env.expectPolls(nil)
	p := env.processor

	require.True(p.AddToReconcile(env.source.add(true)))
	p.tick()
	sent := env.lastPoll()
	response := respond(sent.poll, func(message.Inv) uint32 { return 0 })

	otherKey, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	forged, err := message.SignResponse(otherKey, response)
	require.NoError(err)
	_, err = p.RegisterSignedVotes(sent.nodeID, forged)
	require.ErrorIs(err, message.ErrInvalidSignature)
	require.Equal(100, BanScore(err))

	_, err = p.RegisterSignedVotes(sent.nodeID+1, forged)
	require.ErrorIs(err, ErrUnknownSessionKey)
	require.Zero(BanScore(err))

	signed, err := message.SignResponse(env.sessionKeys[sent.nodeID], response)
	require.NoError(err)
	_, err = p.RegisterSignedVotes(sent.nodeID, signed)
	require.NoError(err)
}

func TestSignResponse(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 1)
	p := env.processor

	response := &message.Response{Round: 3}
	signed, err := p.SignResponse(response)
	require.NoError(err)
	require.NoError(message.VerifyResponse(p.SessionPublicKey(), signed))

	p.sessionKey = nil
	require.Nil(p.SessionPublicKey())
	_, err = p.SignResponse(response)
	require.ErrorIs(err, errNoSessionKey)
}

func TestRespond(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t, testParameters(), 1)
	p := env.processor

	accepted := env.source.add(true)
	rejected := env.source.add(false)
	unknown := message.NewBlockInv(ids.GenerateTestID())
	wrongType := message.Inv{Type: message.MsgProof, ID: accepted.ID}

	response := p.Respond(&message.Poll{
		Round: 5,
		Invs:  []message.Inv{accepted, rejected, unknown, wrongType},
	}, 250*time.Millisecond)
	require.Equal(&message.Response{
		Round:    5,
		Cooldown: 250,
		Votes: []message.Vote{
			{Error: 0, ID: accepted.ID},
			{Error: 1, ID: rejected.ID},
			{Error: math.MaxUint32, ID: unknown.ID},
			{Error: math.MaxUint32, ID: wrongType.ID},
		},
	}, response)
}

func TestRespondCooldown(t *testing.T) {
	tests := []struct {
		name     string
		cooldown time.Duration
		expected uint32
	}{
		{
			name:     "negative",
			cooldown: -time.Second,
			expected: 0,
		},
		{
			name:     "sub millisecond",
			cooldown: time.Microsecond,
			expected: 0,
		},
		{
			name:     "largest",
			cooldown: math.MaxUint32 * time.Millisecond,
			expected: math.MaxUint32,
		},
		{
			name:     "saturates",
			cooldown: 100 * 24 * time.Hour,
			expected: math.MaxUint32,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			env := newTestEnv(t, testParameters(), 1)
			response := env.processor.Respond(&message.Poll{Round: 1}, test.cooldown)
			require.Equal(t, test.expected, response.Cooldown)
		})
	}
}

func TestEventLoop(t *testing.T) {
	require := require.New(t)

	params := testParameters()
	params.TimeStep = time.Millisecond
	env := newTestEnv(t, params, 1)
	p := env.processor

	polled := make(chan struct{}, 1)
	env.sender.EXPECT().SendPoll(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ids.NodeID, *message.Poll) error {
			select {
			case polled <- struct{}{}:
			default:
			}
			return nil
		},
	).AnyTimes()

	require.True(p.AddToReconcile(env.source.add(true)))
	require.False(p.StopEventLoop())
	require.True(p.StartEventLoop(context.Background()))
	require.False(p.StartEventLoop(context.Background()))
	<-polled
	require.True(p.StopEventLoop())
	require.False(p.StopEventLoop())
}

func TestBanScore(t *testing.T) {
	tests := []struct {
		err           error
		expectedScore int
	}{
		{nil, 0},
		{ErrUnexpectedResponse, 0},
		{ErrUnknownSessionKey, 0},
		{ErrInvalidResponseSize, 100},
		{ErrInvalidResponseContent, 100},
		{fmt.Errorf("wrapped: %w", ErrInvalidResponseContent), 100},
		{message.ErrInvalidSignature, 100},
		{errUnreachable, 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.err), func(t *testing.T) {
			require.Equal(t, test.expectedScore, BanScore(test.err))
		})
	}
}
