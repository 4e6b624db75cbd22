// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package voterecord

import (
	"errors"
	"fmt"
	"math"
)

var (
	DefaultParameters = Parameters{
		FinalizationScore:  128,
		MaxInflightPoll:    16,
		QuorumSize:         8,
		StaleVoteThreshold: 4096,
		StaleVoteFactor:    64,
	}

	ErrParametersInvalid = errors.New("parameters invalid")
)

// Parameters required for vote records to be tracked.
//
// FinalizationScore is the confidence, in agreeing rounds, after which a
// record's decision is final.
// MaxInflightPoll bounds the number of outstanding polls for a single record.
// QuorumSize is the number of distinct voters remembered by the quorum filter.
// A record is stale once it registered more than StaleVoteThreshold votes
// while its confidence stayed below votes/StaleVoteFactor.
type Parameters struct {
	FinalizationScore  int    `json:"finalizationScore"  yaml:"finalizationScore"`
	MaxInflightPoll    int    `json:"maxInflightPoll"    yaml:"maxInflightPoll"`
	QuorumSize         int    `json:"quorumSize"         yaml:"quorumSize"`
	StaleVoteThreshold uint32 `json:"staleVoteThreshold" yaml:"staleVoteThreshold"`
	StaleVoteFactor    uint32 `json:"staleVoteFactor"    yaml:"staleVoteFactor"`
}

// Verify returns nil if the parameters describe a valid initialization.
func (p Parameters) Verify() error {
	switch {
	case p.FinalizationScore <= 0:
		return fmt.Errorf("%w: finalizationScore = %d: fails the condition that: 0 < finalizationScore", ErrParametersInvalid, p.FinalizationScore)
	case p.FinalizationScore > math.MaxUint16>>1:
		return fmt.Errorf("%w: finalizationScore = %d: fails the condition that: finalizationScore <= %d", ErrParametersInvalid, p.FinalizationScore, math.MaxUint16>>1)
	case p.MaxInflightPoll <= 0:
		return fmt.Errorf("%w: maxInflightPoll = %d: fails the condition that: 0 < maxInflightPoll", ErrParametersInvalid, p.MaxInflightPoll)
	case p.QuorumSize < 2:
		return fmt.Errorf("%w: quorumSize = %d: fails the condition that: 2 <= quorumSize", ErrParametersInvalid, p.QuorumSize)
	case p.StaleVoteFactor == 0:
		return fmt.Errorf("%w: staleVoteFactor = %d: fails the condition that: 0 < staleVoteFactor", ErrParametersInvalid, p.StaleVoteFactor)
	default:
		return nil
	}
}
