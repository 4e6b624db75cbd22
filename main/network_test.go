// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ava-labs/avalanche-preconsensus/config"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

func testConfig(t *testing.T) config.Config {
	params := preconsensus.DefaultParameters
	// Each node sends at most one poll per TimeStep and polls a peer again
	// only after its response, so the inboxes stay short even on a loaded
	// machine. The timeout is far above any inbox backlog so no response is
	// ever late.
	params.QueryTimeout = 30 * time.Second
	params.VoteParams.FinalizationScore = 16

	return config.Config{
		Processor:    params,
		Logging:      logging.DefaultConfig(),
		PersistPeers: true,
		DataDir:      t.TempDir(),
		Simulation: config.SimulationConfig{
			NumNodes:  10,
			NumBlocks: 4,
			Duration:  2 * time.Minute,
		},
	}
}

func TestNetworkFinalizes(t *testing.T) {
	require := require.New(t)

	c := testConfig(t)
	net, err := newNetwork(logging.NoLog{}, c)
	require.NoError(err)
	require.Len(net.nodes, c.Simulation.NumNodes)
	require.Len(net.invs, c.Simulation.NumBlocks+1)

	require.NoError(net.run(context.Background()))

	conflict := net.invs[len(net.invs)-1]
	for _, nd := range net.nodes {
		tip, ok := nd.index.FinalizationTip()
		require.True(ok)
		require.Equal(net.lastBlk, tip.ID())

		blk, ok := nd.index.Get(conflict.ID)
		require.True(ok)
		require.False(nd.index.IsWorthPolling(blk))
	}

	// The first node saved the proofs of the others.
	db, err := leveldb.OpenFile(net.peersDBPath(), nil)
	require.NoError(err)
	defer db.Close()

	manager := peers.NewManager(logging.NoLog{}, &mockable.Clock{}, sampler.NewRNG())
	numLoaded, err := manager.Load(db)
	require.NoError(err)
	require.Equal(c.Simulation.NumNodes-1, numLoaded)
}

func TestNetworkTimesOut(t *testing.T) {
	c := testConfig(t)
	c.PersistPeers = false
	// Not enough nodes for a quorum.
	c.Simulation.NumNodes = 2
	c.Simulation.Duration = 50 * time.Millisecond

	net, err := newNetwork(logging.NoLog{}, c)
	require.NoError(t, err)
	require.ErrorIs(t, net.run(context.Background()), errTimedOut)
}

func TestDropResponse(t *testing.T) {
	require := require.New(t)

	c := testConfig(t)
	c.PersistPeers = false
	c.Simulation.NumNodes = 1
	net, err := newNetwork(logging.NoLog{}, c)
	require.NoError(err)

	for i := 0; i < 100; i++ {
		require.False(net.dropResponse())
	}

	net.config.Simulation.ResponseLoss = 1
	for i := 0; i < 100; i++ {
		require.True(net.dropResponse())
	}
}

func TestMasterKeyIsStable(t *testing.T) {
	require := require.New(t)

	k0, err := masterKey(0)
	require.NoError(err)
	k0Again, err := masterKey(0)
	require.NoError(err)
	k1, err := masterKey(1)
	require.NoError(err)

	require.Equal(k0.Bytes(), k0Again.Bytes())
	require.NotEqual(k0.Bytes(), k1.Bytes())
}
