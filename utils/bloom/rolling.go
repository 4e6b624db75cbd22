// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bloom

import (
	"errors"
	"sync"

	bloomfilter "github.com/holiman/bloomfilter/v2"
	"github.com/spaolacci/murmur3"

	"github.com/ava-labs/avalanche-preconsensus/ids"
)

var (
	errTooFewEntries        = errors.New("too few entries")
	errInvalidFalsePositive = errors.New("false positive probability must be in (0, 1)")
)

// RollingFilter remembers roughly the last [2*n] inserted IDs. Inserts go to
// the current generation. Once it holds [n] entries it becomes the previous
// generation and the old previous generation is dropped.
//
// RollingFilter is safe for concurrent use.
type RollingFilter struct {
	lock     sync.RWMutex
	n        uint64
	p        float64
	count    uint64
	current  *bloomfilter.Filter
	previous *bloomfilter.Filter
}

func NewRollingFilter(n uint64, p float64) (*RollingFilter, error) {
	if n == 0 {
		return nil, errTooFewEntries
	}
	if p <= 0 || p >= 1 {
		return nil, errInvalidFalsePositive
	}
	current, err := bloomfilter.NewOptimal(n, p)
	if err != nil {
		return nil, err
	}
	return &RollingFilter{
		n:       n,
		p:       p,
		current: current,
	}, nil
}

func hash(id ids.ID) uint64 {
	return murmur3.Sum64(id[:])
}

func (f *RollingFilter) Add(id ids.ID) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.count >= f.n {
		f.previous = f.current
		f.current = f.newGeneration()
		f.count = 0
	}
	f.current.AddHash(hash(id))
	f.count++
}

// Contains may return false positives but never false negatives for IDs added
// within the last [n] insertions.
func (f *RollingFilter) Contains(id ids.ID) bool {
	f.lock.RLock()
	defer f.lock.RUnlock()

	h := hash(id)
	if f.current.ContainsHash(h) {
		return true
	}
	return f.previous != nil && f.previous.ContainsHash(h)
}

// Reset drops every generation.
func (f *RollingFilter) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.current = f.newGeneration()
	f.previous = nil
	f.count = 0
}

func (f *RollingFilter) newGeneration() *bloomfilter.Filter {
	filter, err := bloomfilter.NewOptimal(f.n, f.p)
	if err != nil {
		// The parameters were validated when the first generation was created.
		panic(err)
	}
	return filter
}
