// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSet(t *testing.T) {
	require := require.New(t)

	clock := Clock{}
	now := time.Unix(1_000_000, 0)
	clock.Set(now)
	require.Equal(now, clock.Time())

	clock.Advance(time.Second)
	require.Equal(now.Add(time.Second), clock.Time())
	require.Equal(time.Second, clock.Since(now))

	clock.Sync()
	require.WithinDuration(time.Now(), clock.Time(), time.Minute)
}

func TestClockAdvanceUnfaked(t *testing.T) {
	require := require.New(t)

	clock := Clock{}
	before := time.Now()
	clock.Advance(time.Hour)
	require.False(clock.Time().Before(before.Add(time.Hour)))
}
