// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package queries tracks the polls that were sent and are still waiting for a
// response.
package queries

import (
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
)

// Degree of the timeout index. Registries hold at most a few hundred queries.
const btreeDegree = 8

// Query is an outstanding poll sent to NodeID during Round.
type Query struct {
	NodeID  ids.NodeID
	Round   uint64
	Start   time.Time
	Timeout time.Time
	Invs    []message.Inv
}

type key struct {
	nodeID ids.NodeID
	round  uint64
}

func (q *Query) key() key {
	return key{
		nodeID: q.NodeID,
		round:  q.Round,
	}
}

// less orders queries by timeout. Ties are broken by key so that no two
// distinct queries compare equal.
func less(a, b *Query) bool {
	switch {
	case !a.Timeout.Equal(b.Timeout):
		return a.Timeout.Before(b.Timeout)
	case a.NodeID != b.NodeID:
		return a.NodeID < b.NodeID
	default:
		return a.Round < b.Round
	}
}

// Registry indexes queries both by (node, round) and by timeout.
//
// Registry is safe for concurrent use.
type Registry struct {
	lock      sync.Mutex
	byKey     map[key]*Query
	byTimeout *btree.BTreeG[*Query]
}

func NewRegistry() *Registry {
	return &Registry{
		byKey:     make(map[key]*Query),
		byTimeout: btree.NewG(btreeDegree, less),
	}
}

// Insert adds [q]. Returns false if a query with the same node and round is
// already registered.
func (r *Registry) Insert(q Query) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	k := q.key()
	if _, ok := r.byKey[k]; ok {
		return false
	}
	r.byKey[k] = &q
	r.byTimeout.ReplaceOrInsert(&q)
	return true
}

// Consume removes and returns the query sent to [nodeID] during [round]. A
// query can be consumed at most once.
func (r *Registry) Consume(nodeID ids.NodeID, round uint64) (Query, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	k := key{
		nodeID: nodeID,
		round:  round,
	}
	q, ok := r.byKey[k]
	if !ok {
		return Query{}, false
	}
	delete(r.byKey, k)
	r.byTimeout.Delete(q)
	return *q, true
}

// Sweep removes every query whose timeout is at or before [now]. It returns, for
// every inventory referenced by a removed query, the number of removed
// queries that referenced it.
func (r *Registry) Sweep(now time.Time) map[message.Inv]int {
	r.lock.Lock()
	defer r.lock.Unlock()

	expired := make(map[message.Inv]int)
	for {
		q, ok := r.byTimeout.Min()
		if !ok || now.Before(q.Timeout) {
			return expired
		}
		r.byTimeout.DeleteMin()
		delete(r.byKey, q.key())
		for _, inv := range q.Invs {
			expired[inv]++
		}
	}
}

// Len returns the number of outstanding queries.
func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.byKey)
}

// NextTimeout returns the earliest timeout of the outstanding queries.
func (r *Registry) NextTimeout() (time.Time, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q, ok := r.byTimeout.Min()
	if !ok {
		return time.Time{}, false
	}
	return q.Timeout, true
}
