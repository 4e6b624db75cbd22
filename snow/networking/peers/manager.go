// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package peers

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
	"github.com/ava-labs/avalanche-preconsensus/utils/sampler"
	"github.com/ava-labs/avalanche-preconsensus/utils/timer/mockable"
)

const (
	selectNodeMaxRetry = 3
	selectPeerMaxRetry = 3

	btreeDegree = 8
)

var ErrAlreadyRegistered = errors.New("proof already registered")

// Peer is a registered proof together with the nodes attached to it.
type Peer struct {
	ID               ids.PeerID
	Proof            *Proof
	NodeCount        int
	HasFinalized     bool
	RegistrationTime time.Time

	// index of the slot allocated to this peer, only meaningful while
	// NodeCount > 0
	index int
}

func (p *Peer) Score() uint32 {
	return p.Proof.Score
}

type node struct {
	nodeID          ids.NodeID
	peerID          ids.PeerID
	nextRequestTime time.Time
	publicKey       *secp256k1.PublicKey
}

// firstNodeOf returns a pivot that sorts before every node of [peerID].
func firstNodeOf(peerID ids.PeerID) *node {
	return &node{
		nodeID: math.MinInt64,
		peerID: peerID,
	}
}

// lessNode orders nodes by peer, then by the time they can next be queried.
func lessNode(a, b *node) bool {
	switch {
	case a.peerID != b.peerID:
		return a.peerID < b.peerID
	case !a.nextRequestTime.Equal(b.nextRequestTime):
		return a.nextRequestTime.Before(b.nextRequestTime)
	default:
		return a.nodeID < b.nodeID
	}
}

type pendingNode struct {
	proofID   ids.ID
	publicKey *secp256k1.PublicKey
}

// slot is the range [start, start+score) of the selection space owned by a
// peer. Slots left behind by removed peers keep their range but point to
// ids.NoPeer until the slots are compacted.
type slot struct {
	start  uint64
	score  uint32
	peerID ids.PeerID
}

func (s slot) stop() uint64 {
	return s.start + uint64(s.score)
}

func (s slot) contains(v uint64) bool {
	return s.start <= v && v < s.stop()
}

// Manager keeps track of the stake backed peers and of the nodes that can be
// polled on their behalf.
//
// Manager is not safe for concurrent use.
type Manager struct {
	log   logging.Logger
	clock *mockable.Clock
	rng   *sampler.RNG

	nextPeerID   ids.PeerID
	peers        map[ids.PeerID]*Peer
	peersByProof map[ids.ID]*Peer

	nodes map[ids.NodeID]*node
	// nodes ordered by (peer, next request time, node)
	schedule *btree.BTreeG[*node]
	pending  map[ids.NodeID]pendingNode

	slots         []slot
	slotCount     uint64
	fragmentation uint64

	totalPeersScore     uint64
	connectedPeersScore uint64
}

func NewManager(log logging.Logger, clock *mockable.Clock, rng *sampler.RNG) *Manager {
	return &Manager{
		log:          log,
		clock:        clock,
		rng:          rng,
		peers:        make(map[ids.PeerID]*Peer),
		peersByProof: make(map[ids.ID]*Peer),
		nodes:        make(map[ids.NodeID]*node),
		schedule:     btree.NewG(btreeDegree, lessNode),
		pending:      make(map[ids.NodeID]pendingNode),
	}
}

// RegisterProof verifies [proof] and creates a peer for it. Nodes that were
// waiting for this proof are attached to the new peer.
func (m *Manager) RegisterProof(proof *Proof) error {
	proofID := proof.ID()
	if _, ok := m.peersByProof[proofID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, proofID)
	}
	now := m.clock.Time()
	if err := proof.Verify(now); err != nil {
		return err
	}

	peer := &Peer{
		ID:               m.nextPeerID,
		Proof:            proof,
		RegistrationTime: now,
	}
	m.nextPeerID++
	m.peers[peer.ID] = peer
	m.peersByProof[proofID] = peer
	m.totalPeersScore += uint64(proof.Score)

	m.log.Debug("registered proof",
		zap.Stringer("proofID", proofID),
		zap.Stringer("peerID", peer.ID),
		zap.String("master", proof.MasterAddress()),
		zap.Uint32("score", proof.Score),
	)

	for nodeID, p := range m.pending {
		if p.proofID == proofID {
			m.addOrUpdateNode(peer, nodeID, p.publicKey)
		}
	}
	return nil
}

// RemovePeer drops the peer and parks its nodes until a proof with the same
// ID is registered again.
func (m *Manager) RemovePeer(peerID ids.PeerID) bool {
	peer, ok := m.peers[peerID]
	if !ok {
		return false
	}

	m.removeNodeFromPeer(peer, peer.NodeCount)

	// Nodes with an active timeout stay indexed so that they are not
	// over-queried if they attach to another peer.
	now := m.clock.Time()
	var toRemove []*node
	m.schedule.AscendGreaterOrEqual(firstNodeOf(peerID), func(n *node) bool {
		if n.peerID != peerID {
			return false
		}
		m.pending[n.nodeID] = pendingNode{
			proofID:   peer.Proof.ID(),
			publicKey: n.publicKey,
		}
		if !n.nextRequestTime.After(now) {
			toRemove = append(toRemove, n)
		}
		return true
	})
	for _, n := range toRemove {
		m.schedule.Delete(n)
		delete(m.nodes, n.nodeID)
	}

	m.totalPeersScore -= uint64(peer.Score())
	delete(m.peers, peerID)
	delete(m.peersByProof, peer.Proof.ID())
	return true
}

// AddNode attaches [nodeID] to the peer of [proofID]. If the proof is unknown
// the node is parked until it gets registered and false is returned.
func (m *Manager) AddNode(nodeID ids.NodeID, proofID ids.ID, publicKey *secp256k1.PublicKey) bool {
	peer, ok := m.peersByProof[proofID]
	if !ok {
		// The node may be switching to an unknown proof. It can't be both
		// active and pending.
		m.RemoveNode(nodeID)
		m.pending[nodeID] = pendingNode{
			proofID:   proofID,
			publicKey: publicKey,
		}
		return false
	}
	return m.addOrUpdateNode(peer, nodeID, publicKey)
}

func (m *Manager) addOrUpdateNode(peer *Peer, nodeID ids.NodeID, publicKey *secp256k1.PublicKey) bool {
	n, ok := m.nodes[nodeID]
	if ok {
		if oldPeer, ok := m.peers[n.peerID]; ok {
			m.removeNodeFromPeer(oldPeer, 1)
		}
		m.schedule.Delete(n)
		n.peerID = peer.ID
		if publicKey != nil {
			n.publicKey = publicKey
		}
	} else {
		n = &node{
			nodeID:    nodeID,
			peerID:    peer.ID,
			publicKey: publicKey,
		}
		m.nodes[nodeID] = n
	}
	m.schedule.ReplaceOrInsert(n)
	m.addNodeToPeer(peer)
	delete(m.pending, nodeID)
	return true
}

func (m *Manager) addNodeToPeer(peer *Peer) {
	peer.NodeCount++
	if peer.NodeCount > 1 {
		return
	}

	// First node of this peer, allocate a slot.
	peer.index = len(m.slots)
	s := slot{
		start:  m.slotCount,
		score:  peer.Score(),
		peerID: peer.ID,
	}
	m.slots = append(m.slots, s)
	m.slotCount = s.stop()
	m.connectedPeersScore += uint64(s.score)
}

// RemoveNode detaches [nodeID] from its peer.
func (m *Manager) RemoveNode(nodeID ids.NodeID) bool {
	_, wasPending := m.pending[nodeID]
	delete(m.pending, nodeID)

	n, ok := m.nodes[nodeID]
	if !ok {
		return wasPending
	}
	m.schedule.Delete(n)
	delete(m.nodes, nodeID)

	// The peer may already be gone if the node was kept around for its
	// request timeout.
	if peer, ok := m.peers[n.peerID]; ok {
		m.removeNodeFromPeer(peer, 1)
	}
	return true
}

func (m *Manager) removeNodeFromPeer(peer *Peer, count int) {
	if count == 0 {
		return
	}
	peer.NodeCount -= count
	if peer.NodeCount > 0 {
		return
	}

	// No node left, release the slot.
	i := peer.index
	m.connectedPeersScore -= uint64(m.slots[i].score)
	if i+1 == len(m.slots) {
		m.slots = m.slots[:i]
		m.slotCount = 0
		if len(m.slots) > 0 {
			m.slotCount = m.slots[len(m.slots)-1].stop()
		}
		return
	}
	m.fragmentation += uint64(m.slots[i].score)
	m.slots[i].peerID = ids.NoPeer
}

// UpdateNextRequestTime sets the earliest time [nodeID] may be queried again.
func (m *Manager) UpdateNextRequestTime(nodeID ids.NodeID, t time.Time) bool {
	n, ok := m.nodes[nodeID]
	if !ok {
		return false
	}
	m.schedule.Delete(n)
	n.nextRequestTime = t
	m.schedule.ReplaceOrInsert(n)
	return true
}

// SelectNode picks a peer with a probability proportional to its score and
// returns its node that has been waiting the longest, if that node may be
// queried now. Returns ids.NoNode if nothing could be selected.
func (m *Manager) SelectNode() ids.NodeID {
	now := m.clock.Time()
	for retry := 0; retry < selectNodeMaxRetry; retry++ {
		peerID := m.selectPeer()
		if peerID == ids.NoPeer {
			// This may be caused by fragmentation.
			m.compact()
			continue
		}

		var selected ids.NodeID = ids.NoNode
		m.schedule.AscendGreaterOrEqual(firstNodeOf(peerID), func(n *node) bool {
			if n.peerID == peerID && !n.nextRequestTime.After(now) {
				selected = n.nodeID
			}
			return false
		})
		if selected != ids.NoNode {
			return selected
		}
	}
	return ids.NoNode
}

func (m *Manager) selectPeer() ids.PeerID {
	if len(m.slots) == 0 || m.slotCount == 0 {
		return ids.NoPeer
	}
	for retry := 0; retry < selectPeerMaxRetry; retry++ {
		if peerID := selectPeerImpl(m.slots, m.rng.Uint64n(m.slotCount)); peerID != ids.NoPeer {
			return peerID
		}
	}
	return ids.NoPeer
}

// selectPeerImpl returns the peer owning [v], or ids.NoPeer if [v] falls in
// a released slot.
func selectPeerImpl(slots []slot, v uint64) ids.PeerID {
	i := sort.Search(len(slots), func(i int) bool {
		return slots[i].stop() > v
	})
	if i == len(slots) || !slots[i].contains(v) {
		return ids.NoPeer
	}
	return slots[i].peerID
}

// compact rebuilds the slots without the released ranges and returns the
// amount of selection space that was reclaimed.
func (m *Manager) compact() uint64 {
	if m.fragmentation == 0 {
		return 0
	}

	slots := make([]slot, 0, len(m.slots))
	var prevStop uint64
	for _, s := range m.slots {
		if s.peerID == ids.NoPeer {
			continue
		}
		peer := m.peers[s.peerID]
		peer.index = len(slots)
		s.start = prevStop
		slots = append(slots, s)
		prevStop = s.stop()
	}

	saved := m.slotCount - prevStop
	m.slots = slots
	m.slotCount = prevStop
	m.fragmentation = 0

	m.log.Debug("compacted peer slots",
		zap.Uint64("reclaimed", saved),
		zap.Int("numSlots", len(slots)),
	)
	return saved
}

// SetFinalized marks that the peer's proof was finalized by avalanche.
func (m *Manager) SetFinalized(peerID ids.PeerID) bool {
	peer, ok := m.peers[peerID]
	if !ok {
		return false
	}
	peer.HasFinalized = true
	return true
}

// GetNodeCount returns the number of nodes attached to a peer.
func (m *Manager) GetNodeCount() int {
	count := 0
	for _, peer := range m.peers {
		count += peer.NodeCount
	}
	return count
}

func (m *Manager) GetPendingNodeCount() int {
	return len(m.pending)
}

// GetTotalPeersScore returns the score of every registered proof.
func (m *Manager) GetTotalPeersScore() uint64 {
	return m.totalPeersScore
}

// GetConnectedPeersScore returns the score of the proofs that have at least
// one node attached.
func (m *Manager) GetConnectedPeersScore() uint64 {
	return m.connectedPeersScore
}

func (m *Manager) IsBoundToPeer(proofID ids.ID) bool {
	_, ok := m.peersByProof[proofID]
	return ok
}

func (m *Manager) GetProof(proofID ids.ID) (*Proof, bool) {
	peer, ok := m.peersByProof[proofID]
	if !ok {
		return nil, false
	}
	return peer.Proof, true
}

// GetNodePublicKey returns the session key [nodeID] signs its responses with.
func (m *Manager) GetNodePublicKey(nodeID ids.NodeID) (*secp256k1.PublicKey, bool) {
	n, ok := m.nodes[nodeID]
	if !ok || n.publicKey == nil {
		return nil, false
	}
	return n.publicKey, true
}

// GetPeerID returns the peer [nodeID] is attached to.
func (m *Manager) GetPeerID(nodeID ids.NodeID) (ids.PeerID, bool) {
	n, ok := m.nodes[nodeID]
	if !ok {
		return ids.NoPeer, false
	}
	if _, ok := m.peers[n.peerID]; !ok {
		return ids.NoPeer, false
	}
	return n.peerID, true
}

// ForPeer calls [f] with the peer of [proofID] and returns its result. Returns
// false if no peer is bound to the proof.
func (m *Manager) ForPeer(proofID ids.ID, f func(Peer) bool) bool {
	peer, ok := m.peersByProof[proofID]
	if !ok {
		return false
	}
	return f(*peer)
}

// ForEachPeer calls [f] with every peer until [f] returns false.
func (m *Manager) ForEachPeer(f func(Peer) bool) {
	for _, peer := range m.peers {
		if !f(*peer) {
			return
		}
	}
}

// verify checks the internal consistency of the manager.
func (m *Manager) verify() error {
	var (
		prevStop       uint64
		scoreFromSlots uint64
	)
	for i, s := range m.slots {
		if s.start < prevStop {
			return fmt.Errorf("slot %d starts at %d before the previous stop %d", i, s.start, prevStop)
		}
		prevStop = s.stop()
		if s.peerID == ids.NoPeer {
			continue
		}
		peer, ok := m.peers[s.peerID]
		if !ok || peer.index != i {
			return fmt.Errorf("slot %d points to an unknown %s", i, s.peerID)
		}
		scoreFromSlots += uint64(s.score)
	}
	if scoreFromSlots != m.connectedPeersScore {
		return fmt.Errorf("slots hold %d score but %d is connected", scoreFromSlots, m.connectedPeersScore)
	}

	var scoreFromPeers uint64
	for _, peer := range m.peers {
		scoreFromPeers += uint64(peer.Score())

		count := 0
		m.schedule.AscendGreaterOrEqual(firstNodeOf(peer.ID), func(n *node) bool {
			if n.peerID != peer.ID {
				return false
			}
			count++
			return true
		})
		if count != peer.NodeCount {
			return fmt.Errorf("%s has %d nodes but %d are indexed", peer.ID, peer.NodeCount, count)
		}
	}
	if scoreFromPeers != m.totalPeersScore {
		return fmt.Errorf("peers hold %d score but %d is registered", scoreFromPeers, m.totalPeersScore)
	}
	return nil
}
