// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package voterecord

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParametersVerify(t *testing.T) {
	tests := []struct {
		name          string
		params        Parameters
		expectedError error
	}{
		{
			name:          "default",
			params:        DefaultParameters,
			expectedError: nil,
		},
		{
			name: "invalid FinalizationScore",
			params: Parameters{
				FinalizationScore:  0,
				MaxInflightPoll:    16,
				QuorumSize:         8,
				StaleVoteThreshold: 4096,
				StaleVoteFactor:    64,
			},
			expectedError: ErrParametersInvalid,
		},
		{
			name: "FinalizationScore overflows confidence",
			params: Parameters{
				FinalizationScore:  1 << 15,
				MaxInflightPoll:    16,
				QuorumSize:         8,
				StaleVoteThreshold: 4096,
				StaleVoteFactor:    64,
			},
			expectedError: ErrParametersInvalid,
		},
		{
			name: "invalid MaxInflightPoll",
			params: Parameters{
				FinalizationScore:  128,
				MaxInflightPoll:    0,
				QuorumSize:         8,
				StaleVoteThreshold: 4096,
				StaleVoteFactor:    64,
			},
			expectedError: ErrParametersInvalid,
		},
		{
			name: "invalid QuorumSize",
			params: Parameters{
				FinalizationScore:  128,
				MaxInflightPoll:    16,
				QuorumSize:         1,
				StaleVoteThreshold: 4096,
				StaleVoteFactor:    64,
			},
			expectedError: ErrParametersInvalid,
		},
		{
			name: "invalid StaleVoteFactor",
			params: Parameters{
				FinalizationScore:  128,
				MaxInflightPoll:    16,
				QuorumSize:         8,
				StaleVoteThreshold: 4096,
				StaleVoteFactor:    0,
			},
			expectedError: ErrParametersInvalid,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Verify()
			require.ErrorIs(t, err, test.expectedError)
		})
	}
}
