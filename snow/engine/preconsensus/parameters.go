// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanche-preconsensus/snow/consensus/voterecord"
)

var (
	DefaultParameters = Parameters{
		QueryTimeout:                 10 * time.Second,
		TimeStep:                     10 * time.Millisecond,
		MaxElementPoll:               16,
		VoteParams:                   voterecord.DefaultParameters,
		MinQuorumScore:               0,
		MinQuorumConnectedScoreRatio: 0,
		MinNodeCount:                 8,
		FinalizedItemsFilterSize:     16 * 20,
	}

	ErrParametersInvalid = errors.New("parameters invalid")
)

// Parameters of the polling engine.
type Parameters struct {
	// QueryTimeout is how long a poll may stay unanswered before the items it
	// carried can be polled again.
	QueryTimeout time.Duration `json:"queryTimeout" yaml:"queryTimeout"`
	// TimeStep is the period of the event loop.
	TimeStep time.Duration `json:"timeStep" yaml:"timeStep"`
	// MaxElementPoll is the maximum number of items in a single poll.
	MaxElementPoll int `json:"maxElementPoll" yaml:"maxElementPoll"`

	VoteParams voterecord.Parameters `json:"voteParams" yaml:"voteParams"`

	// Polling only starts once the registered proofs commit at least
	// MinQuorumScore, and MinQuorumConnectedScoreRatio of that score is
	// backed by connected nodes. Both conditions are latched.
	MinQuorumScore               uint64  `json:"minQuorumScore"               yaml:"minQuorumScore"`
	MinQuorumConnectedScoreRatio float64 `json:"minQuorumConnectedScoreRatio" yaml:"minQuorumConnectedScoreRatio"`
	// MinNodeCount is the number of nodes required to poll. It is not
	// latched.
	MinNodeCount int `json:"minNodeCount" yaml:"minNodeCount"`

	FinalizedItemsFilterSize uint64 `json:"finalizedItemsFilterSize" yaml:"finalizedItemsFilterSize"`
}

// Verify returns nil if the parameters describe a valid initialization.
func (p Parameters) Verify() error {
	switch {
	case p.QueryTimeout <= 0:
		return fmt.Errorf("%w: queryTimeout = %s: fails the condition that: 0 < queryTimeout", ErrParametersInvalid, p.QueryTimeout)
	case p.TimeStep <= 0:
		return fmt.Errorf("%w: timeStep = %s: fails the condition that: 0 < timeStep", ErrParametersInvalid, p.TimeStep)
	case p.MaxElementPoll <= 0:
		return fmt.Errorf("%w: maxElementPoll = %d: fails the condition that: 0 < maxElementPoll", ErrParametersInvalid, p.MaxElementPoll)
	case p.MinQuorumConnectedScoreRatio < 0 || p.MinQuorumConnectedScoreRatio > 1:
		return fmt.Errorf("%w: minQuorumConnectedScoreRatio = %f: fails the condition that: 0 <= minQuorumConnectedScoreRatio <= 1", ErrParametersInvalid, p.MinQuorumConnectedScoreRatio)
	case p.MinNodeCount < 0:
		return fmt.Errorf("%w: minNodeCount = %d: fails the condition that: 0 <= minNodeCount", ErrParametersInvalid, p.MinNodeCount)
	case p.FinalizedItemsFilterSize == 0:
		return fmt.Errorf("%w: finalizedItemsFilterSize = %d: fails the condition that: 0 < finalizedItemsFilterSize", ErrParametersInvalid, p.FinalizedItemsFilterSize)
	}
	if err := p.VoteParams.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrParametersInvalid, err)
	}
	return nil
}
