// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package voterecord

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/ava-labs/avalanche-preconsensus/ids"
)

const (
	// initialVotes alternates yes and no so that a fresh record needs a full
	// window of agreeing votes before a round is conclusive.
	initialVotes = 0xaa

	// A round is conclusive once more than this many of the last 8 votes
	// agree.
	minAgreeingVotes = 6
)

// VoteRecord accumulates the votes received for a single item.
//
// The bit 0 of [confidence] holds the current decision. The remaining bits
// count the agreeing rounds since the decision last changed.
//
// VoteRecord is not safe for concurrent use, except for the inflight
// counter helpers which may race with each other and with RegisterVote.
type VoteRecord struct {
	params Parameters

	// Bitfields of the last 8 votes. A bit of [votes] is set for a yes vote,
	// a bit of [consider] is set when the vote was not an abstention.
	votes    uint8
	consider uint8

	confidence uint16

	inflight atomic.Uint32

	// Ring of the voters that most recently got a vote admitted.
	nodeFilter      []uint16
	successfulVotes uint32
	seed            uint64
}

// New returns a record whose initial decision is [accepted]. [seed] salts the
// quorum filter so that hash collisions differ between records.
func New(accepted bool, params Parameters, seed uint64) *VoteRecord {
	vr := &VoteRecord{
		params:     params,
		votes:      initialVotes,
		nodeFilter: make([]uint16, params.QuorumSize),
		seed:       seed,
	}
	if accepted {
		vr.confidence = 1
	}
	return vr
}

func (vr *VoteRecord) IsAccepted() bool {
	return vr.confidence&1 == 1
}

// GetConfidence returns the number of agreeing rounds since the decision last
// changed.
func (vr *VoteRecord) GetConfidence() int {
	return int(vr.confidence >> 1)
}

func (vr *VoteRecord) HasFinalized() bool {
	return vr.GetConfidence() >= vr.params.FinalizationScore
}

// RegisterVote records that [nodeID] answered with [err]. An error of 0 is a
// yes vote, a negative error (as an int32) is an abstention and anything else
// is a no vote.
//
// Returns true when the decision flipped or when the record just reached the
// finalization score. Agreeing rounds before that point return false.
func (vr *VoteRecord) RegisterVote(nodeID ids.NodeID, err uint32) bool {
	// One fewer outstanding request now that this vote arrived.
	vr.ClearInflightRequest(1)

	if !vr.addNodeToQuorum(nodeID) {
		return false
	}

	vr.votes <<= 1
	vr.consider <<= 1
	if err == 0 {
		vr.votes |= 1
	}
	if int32(err) >= 0 {
		vr.consider |= 1
	}

	yes := bits.OnesCount8(vr.votes&vr.consider) > minAgreeingVotes
	if !yes {
		no := bits.OnesCount8(^vr.votes&vr.consider) > minAgreeingVotes
		if !no {
			return false
		}
	}

	if vr.IsAccepted() == yes {
		if vr.confidence < ^uint16(0)-1 {
			vr.confidence += 2
		}
		return vr.GetConfidence() == vr.params.FinalizationScore
	}

	vr.confidence = 0
	if yes {
		vr.confidence = 1
	}
	return true
}

// addNodeToQuorum returns false if [nodeID] already voted within the current
// quorum window.
func (vr *VoteRecord) addNodeToQuorum(nodeID ids.NodeID) bool {
	if nodeID == ids.NoNode {
		return true
	}

	// MMIX linear congruential generator.
	r1 := 6364136223846793005*uint64(nodeID) + 1442695040888963407
	// Fibonacci hashing.
	r2 := 11400714819323198485 * (uint64(nodeID) ^ vr.seed)
	h := uint16((r1 + r2) >> 48)

	// The slot at the cursor is about to be overwritten so it is skipped.
	size := uint32(len(vr.nodeFilter))
	for i := uint32(1); i < size; i++ {
		if vr.nodeFilter[(vr.successfulVotes+i)%size] == h {
			return false
		}
	}

	vr.nodeFilter[vr.successfulVotes%size] = h
	vr.successfulVotes++
	return true
}

// RegisterPoll reserves an inflight slot. Returns false, without reserving
// anything, if the record already has MaxInflightPoll outstanding polls.
func (vr *VoteRecord) RegisterPoll() bool {
	maxInflight := uint32(vr.params.MaxInflightPoll)
	for {
		current := vr.inflight.Load()
		if current >= maxInflight {
			return false
		}
		if vr.inflight.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

// ShouldPoll reports whether RegisterPoll would currently succeed.
func (vr *VoteRecord) ShouldPoll() bool {
	return vr.inflight.Load() < uint32(vr.params.MaxInflightPoll)
}

// ClearInflightRequest releases [count] inflight slots. The counter never
// goes below zero.
func (vr *VoteRecord) ClearInflightRequest(count uint32) {
	for {
		current := vr.inflight.Load()
		next := uint32(0)
		if current > count {
			next = current - count
		}
		if vr.inflight.CompareAndSwap(current, next) {
			return
		}
	}
}

// Inflight returns the number of outstanding polls for this record.
func (vr *VoteRecord) Inflight() int {
	return int(vr.inflight.Load())
}

// IsStale returns true if the record received many votes without building
// confidence. Such records are unlikely to ever finalize.
func (vr *VoteRecord) IsStale() bool {
	return vr.successfulVotes > vr.params.StaleVoteThreshold &&
		uint32(vr.GetConfidence()) < vr.successfulVotes/vr.params.StaleVoteFactor
}

func (vr *VoteRecord) String() string {
	return fmt.Sprintf("VR(Accepted = %t, Confidence = %d, Votes = %08b, Consider = %08b, Inflight = %d)",
		vr.IsAccepted(),
		vr.GetConfidence(),
		vr.votes,
		vr.consider,
		vr.Inflight(),
	)
}
