// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	require := require.New(t)

	a := NewDeterministicRNG(42)
	b := NewDeterministicRNG(42)
	for i := 0; i < 100; i++ {
		require.Equal(a.Uint64(), b.Uint64())
	}
}

func TestUint64InclusiveBounds(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
	}{
		{
			name: "zero",
			n:    0,
		},
		{
			name: "power of two minus one",
			n:    1023,
		},
		{
			name: "small",
			n:    6,
		},
		{
			name: "large",
			n:    math.MaxInt64 + 10,
		},
		{
			name: "max",
			n:    math.MaxUint64,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rng := NewDeterministicRNG(1)
			for i := 0; i < 1000; i++ {
				require.LessOrEqual(t, rng.Uint64Inclusive(test.n), test.n)
			}
		})
	}
}

func TestUint64nCoversRange(t *testing.T) {
	require := require.New(t)

	rng := NewDeterministicRNG(7)
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		v := rng.Uint64n(5)
		require.Less(v, uint64(5))
		seen[v] = true
	}
	require.Len(seen, 5)
}
