// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/avalanche-preconsensus/config"
	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/snow/networking/peers"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

const (
	checkFrequency  = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
	peersDBName     = "peers"
	nodeLabel       = "node"
)

var (
	errUnknownNode = errors.New("unknown node")
	errTimedOut    = errors.New("network didn't finalize in time")
)

// network is a set of nodes exchanging polls in memory. Every node votes on
// the same chain of blocks and on a block that conflicts with it.
type network struct {
	log    logging.Logger
	config config.Config
	params preconsensus.Parameters

	lossLock sync.Mutex
	lossRNG  *sampler.RNG
	cooldown time.Duration

	registry *prometheus.Registry
	nodes    []*node
	// invs every node votes on
	invs    []message.Inv
	lastBlk ids.ID
}

// masterKey returns a key that stays the same across runs so that persisted
// proofs can be reloaded.
func masterKey(id ids.NodeID) (*secp256k1.PrivateKey, error) {
	seed := hashing.ComputeHash256([]byte("master-" + strconv.FormatInt(int64(id), 10)))
	return secp256k1.ToPrivateKey(seed)
}

func newNetwork(log logging.Logger, c config.Config) (*network, error) {
	n := &network{
		log:      log,
		config:   c,
		params:   c.Processor,
		lossRNG:  sampler.NewRNG(),
		cooldown: c.Simulation.Cooldown,
		registry: prometheus.NewRegistry(),
	}

	genesisID := hashing.ComputeHash256Array([]byte("genesis"))
	for i := 0; i < c.Simulation.NumNodes; i++ {
		id := ids.NodeID(i)
		master, err := masterKey(id)
		if err != nil {
			return nil, err
		}
		sessionKey := c.SessionKey
		if i != 0 || sessionKey == nil {
			sessionKey, err = secp256k1.NewPrivateKey()
			if err != nil {
				return nil, err
			}
		}

		registerer := prometheus.WrapRegistererWith(prometheus.Labels{nodeLabel: id.String()}, n.registry)
		nd, err := newNode(id, log.With(zap.Stringer("nodeID", id)), n, master, sessionKey, genesisID, registerer)
		if err != nil {
			return nil, fmt.Errorf("couldn't create %s: %w", id, err)
		}
		n.nodes = append(n.nodes, nd)
	}

	rng := sampler.NewRNG()
	for i, nd := range n.nodes {
		manager := peers.NewManager(nd.log, &mockable.Clock{}, rng)
		if i == 0 && c.PersistPeers {
			if err := n.loadPeers(manager); err != nil {
				return nil, err
			}
		}
		registerer := prometheus.WrapRegistererWith(prometheus.Labels{nodeLabel: nd.id.String()}, n.registry)
		if err := nd.initProcessor(registerer, manager, &mockable.Clock{}, rng); err != nil {
			return nil, fmt.Errorf("couldn't initialize %s: %w", nd.id, err)
		}
	}

	return n, n.buildBlocks(genesisID, c.Simulation.NumBlocks)
}

// buildBlocks gives every node a chain of [numBlocks] blocks and a block
// that conflicts with its first block.
func (n *network) buildBlocks(genesisID ids.ID, numBlocks int) error {
	parentID := genesisID
	for height := 1; height <= numBlocks; height++ {
		blkID := hashing.ComputeHash256Array([]byte("block-" + strconv.Itoa(height)))
		for _, nd := range n.nodes {
			if _, err := nd.index.Add(blkID, parentID); err != nil {
				return err
			}
		}
		n.invs = append(n.invs, message.NewBlockInv(blkID))
		parentID = blkID
	}
	n.lastBlk = parentID

	conflictID := hashing.ComputeHash256Array([]byte("conflict"))
	for _, nd := range n.nodes {
		if _, err := nd.index.Add(conflictID, genesisID); err != nil {
			return err
		}
	}
	n.invs = append(n.invs, message.NewBlockInv(conflictID))

	for _, nd := range n.nodes {
		for _, inv := range n.invs {
			nd.processor.AddToReconcile(inv)
		}
	}
	return nil
}

func (n *network) node(id ids.NodeID) (*node, error) {
	if id < 0 || int(id) >= len(n.nodes) {
		return nil, fmt.Errorf("%w: %s", errUnknownNode, id)
	}
	return n.nodes[id], nil
}

func (n *network) dropResponse() bool {
	if n.config.Simulation.ResponseLoss == 0 {
		return false
	}

	n.lossLock.Lock()
	defer n.lossLock.Unlock()

	const precision = 1_000_000
	return float64(n.lossRNG.Uint64n(precision)) < n.config.Simulation.ResponseLoss*precision
}

func (n *network) peersDBPath() string {
	return filepath.Join(n.config.DataDir, peersDBName)
}

func (n *network) loadPeers(manager *peers.Manager) error {
	db, err := leveldb.OpenFile(n.peersDBPath(), nil)
	if err != nil {
		return fmt.Errorf("couldn't open peers database: %w", err)
	}
	defer db.Close()

	numLoaded, err := manager.Load(db)
	if err != nil {
		return fmt.Errorf("couldn't load peers: %w", err)
	}
	n.log.Info("loaded peers",
		zap.Int("numPeers", numLoaded),
	)
	return nil
}

func (n *network) dumpPeers() error {
	db, err := leveldb.OpenFile(n.peersDBPath(), nil)
	if err != nil {
		return fmt.Errorf("couldn't open peers database: %w", err)
	}
	defer db.Close()

	n.nodes[0].processor.WithPeerManager(func(m *peers.Manager) {
		err = m.Dump(db)
	})
	return err
}

// run starts every node and returns once all of them finalized the chain.
func (n *network) run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, n.config.Simulation.Duration)
	defer cancel()

	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)
	nodesCtx, stopNodes := context.WithCancel(egCtx)
	defer stopNodes()

	for _, nd := range n.nodes {
		nd := nd
		eg.Go(func() error {
			return nd.run(nodesCtx)
		})
	}

	if addr := n.config.Simulation.MetricsAddr; addr != "" {
		server := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(n.registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: shutdownTimeout,
		}
		eg.Go(func() error {
			err := server.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
		eg.Go(func() error {
			<-nodesCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		defer stopNodes()

		ticker := time.NewTicker(checkFrequency)
		defer ticker.Stop()
		for {
			select {
			case <-egCtx.Done():
				return fmt.Errorf("%w after %s", errTimedOut, time.Since(start))
			case <-ticker.C:
			}

			numDone := 0
			for _, nd := range n.nodes {
				if nd.done(n.lastBlk) {
					numDone++
				}
			}
			if numDone == len(n.nodes) {
				n.log.Info("network finalized",
					zap.Stringer("blkID", n.lastBlk),
					zap.Duration("duration", time.Since(start)),
				)
				return nil
			}
		}
	})

	err := eg.Wait()
	if n.config.PersistPeers {
		err = errors.Join(err, n.dumpPeers())
	}
	return err
}
