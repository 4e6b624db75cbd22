// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package voterecord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-preconsensus/ids"
)

const (
	yes     uint32 = 0
	no      uint32 = 1
	abstain uint32 = math.MaxUint32 // -1 as an int32
)

func TestInitialState(t *testing.T) {
	require := require.New(t)

	accepted := New(true, DefaultParameters, 0)
	require.True(accepted.IsAccepted())
	require.False(accepted.HasFinalized())
	require.Zero(accepted.GetConfidence())

	rejected := New(false, DefaultParameters, 0)
	require.False(rejected.IsAccepted())
	require.False(rejected.HasFinalized())
	require.Zero(rejected.GetConfidence())
	require.Zero(rejected.Inflight())
}

func TestVoteRecord(t *testing.T) {
	require := require.New(t)

	score := DefaultParameters.FinalizationScore
	vr := New(false, DefaultParameters, 0)

	registerVoteAndCheck := func(err uint32, accepted, finalized bool, confidence int) {
		vr.RegisterVote(ids.NoNode, err)
		require.Equal(accepted, vr.IsAccepted())
		require.Equal(finalized, vr.HasFinalized())
		require.Equal(confidence, vr.GetConfidence())
	}

	// 6 positive votes are needed before rounds are conclusive.
	for i := 0; i < 6; i++ {
		registerVoteAndCheck(yes, false, false, 0)
	}

	// The next vote flips the decision.
	registerVoteAndCheck(yes, true, false, 0)

	// A single abstention doesn't stall progress.
	registerVoteAndCheck(abstain, true, false, 1)
	for i := 2; i < 8; i++ {
		registerVoteAndCheck(yes, true, false, i)
	}

	// Two abstentions do.
	registerVoteAndCheck(abstain, true, false, 7)
	registerVoteAndCheck(abstain, true, false, 7)
	for i := 2; i < 8; i++ {
		registerVoteAndCheck(yes, true, false, 7)
	}

	// Confidence grows again once the abstentions leave the window.
	for i := 8; i < score; i++ {
		registerVoteAndCheck(yes, true, false, i)
	}

	// The next vote finalizes the decision even though it is a no vote.
	registerVoteAndCheck(no, true, true, score)

	// Confidence stops growing once the window has two no votes.
	for i := 0; i < 5; i++ {
		registerVoteAndCheck(no, true, true, score)
	}

	// A 7th no vote flips the decision.
	registerVoteAndCheck(no, false, false, 0)

	registerVoteAndCheck(abstain, false, false, 1)
	for i := 2; i < 8; i++ {
		registerVoteAndCheck(no, false, false, i)
	}

	registerVoteAndCheck(abstain, false, false, 7)
	registerVoteAndCheck(abstain, false, false, 7)
	for i := 2; i < 8; i++ {
		registerVoteAndCheck(no, false, false, 7)
	}

	for i := 8; i < score; i++ {
		registerVoteAndCheck(no, false, false, i)
	}

	registerVoteAndCheck(yes, false, true, score)
}

func TestRegisterVoteReturnValue(t *testing.T) {
	require := require.New(t)

	params := DefaultParameters
	params.FinalizationScore = 3
	vr := New(false, params, 0)

	// Inconclusive rounds
	for i := 0; i < 6; i++ {
		require.False(vr.RegisterVote(ids.NoNode, yes))
	}

	// Flip
	require.True(vr.RegisterVote(ids.NoNode, yes))
	require.True(vr.IsAccepted())

	// Agreeing rounds only report the one that reaches the finalization score.
	require.False(vr.RegisterVote(ids.NoNode, yes))
	require.False(vr.RegisterVote(ids.NoNode, yes))
	require.True(vr.RegisterVote(ids.NoNode, yes))
	require.True(vr.HasFinalized())

	// Past the finalization score nothing is reported anymore.
	require.False(vr.RegisterVote(ids.NoNode, yes))
	require.Equal(4, vr.GetConfidence())
}

func TestAgreementIsMonotonic(t *testing.T) {
	require := require.New(t)

	vr := New(true, DefaultParameters, 1)
	for i := 0; i < 7; i++ {
		vr.RegisterVote(ids.NoNode, yes)
	}
	require.True(vr.IsAccepted())

	last := vr.GetConfidence()
	for i := 0; i < 50; i++ {
		vr.RegisterVote(ids.NoNode, yes)
		require.True(vr.IsAccepted())
		require.Equal(last+1, vr.GetConfidence())
		last = vr.GetConfidence()
	}

	// A window of no votes resets the confidence.
	for i := 0; i < 7; i++ {
		vr.RegisterVote(ids.NoNode, no)
	}
	require.False(vr.IsAccepted())
	require.Zero(vr.GetConfidence())
}

func TestQuorumFilter(t *testing.T) {
	require := require.New(t)

	vr := New(false, DefaultParameters, 0xdeadbeef)

	const repeated = ids.NodeID(1)
	vr.RegisterVote(repeated, yes)
	require.Equal(uint32(1), vr.successfulVotes)

	votes, consider, confidence := vr.votes, vr.consider, vr.confidence

	// The same node can't vote twice within the window.
	require.False(vr.RegisterVote(repeated, yes))
	require.Equal(uint32(1), vr.successfulVotes)
	require.Equal(votes, vr.votes)
	require.Equal(consider, vr.consider)
	require.Equal(confidence, vr.confidence)

	// Let other nodes vote until the repeated node is about to be evicted.
	for i := 0; i < DefaultParameters.QuorumSize-2; i++ {
		vr.RegisterVote(ids.NodeID(100+i), yes)
		require.Equal(uint32(i+2), vr.successfulVotes)

		require.False(vr.RegisterVote(repeated, yes))
		require.Equal(uint32(i+2), vr.successfulVotes)
	}

	// One more distinct voter moves the cursor onto the repeated node's slot.
	vr.RegisterVote(ids.NodeID(200), yes)
	vr.RegisterVote(repeated, yes)
	require.Equal(uint32(DefaultParameters.QuorumSize+1), vr.successfulVotes)
}

func TestNoNodeBypassesQuorumFilter(t *testing.T) {
	require := require.New(t)

	vr := New(false, DefaultParameters, 0)
	for i := 0; i < 7; i++ {
		vr.RegisterVote(ids.NoNode, yes)
	}
	require.True(vr.IsAccepted())
	require.Zero(vr.successfulVotes)
}

func TestInflightCap(t *testing.T) {
	require := require.New(t)

	vr := New(false, DefaultParameters, 0)
	for i := 0; i < DefaultParameters.MaxInflightPoll; i++ {
		require.True(vr.ShouldPoll())
		require.True(vr.RegisterPoll())
	}
	require.False(vr.ShouldPoll())
	require.False(vr.RegisterPoll())
	require.Equal(DefaultParameters.MaxInflightPoll, vr.Inflight())

	// A vote releases one slot, even when it is rejected by the quorum filter.
	vr.RegisterVote(ids.NodeID(3), yes)
	require.True(vr.ShouldPoll())
	require.True(vr.RegisterPoll())
	require.False(vr.RegisterPoll())

	vr.RegisterVote(ids.NodeID(3), yes)
	require.True(vr.RegisterPoll())

	vr.ClearInflightRequest(4)
	require.Equal(DefaultParameters.MaxInflightPoll-4, vr.Inflight())

	// Releasing more than is inflight saturates at zero.
	vr.ClearInflightRequest(100)
	require.Zero(vr.Inflight())
	vr.RegisterVote(ids.NoNode, yes)
	require.Zero(vr.Inflight())
}

func TestIsStale(t *testing.T) {
	require := require.New(t)

	params := DefaultParameters
	params.StaleVoteThreshold = 10
	params.StaleVoteFactor = 2
	vr := New(false, params, 42)

	// Alternating votes never build confidence.
	for i := 0; vr.successfulVotes <= params.StaleVoteThreshold; i++ {
		require.False(vr.IsStale())
		vr.RegisterVote(ids.NodeID(i), uint32(i%2))
	}
	require.Zero(vr.GetConfidence())
	require.True(vr.IsStale())
}

func TestConfidentRecordIsNotStale(t *testing.T) {
	require := require.New(t)

	params := DefaultParameters
	params.StaleVoteThreshold = 10
	params.StaleVoteFactor = 2
	vr := New(true, params, 42)

	for i := 0; vr.successfulVotes <= 2*params.StaleVoteThreshold; i++ {
		vr.RegisterVote(ids.NodeID(i), yes)
	}
	require.Greater(vr.GetConfidence(), int(vr.successfulVotes/params.StaleVoteFactor))
	require.False(vr.IsStale())
}
