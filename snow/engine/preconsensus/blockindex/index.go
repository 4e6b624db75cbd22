// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blockindex keeps a tree of blocks and exposes it to the processor
// so that blocks can be voted on.
package blockindex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/message"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/utils/bloom"
)

const invalidatedFalsePositiveRate = 0.000001

var (
	_ preconsensus.Source = (*Index)(nil)
	_ preconsensus.Item   = (*Block)(nil)

	ErrUnknownBlock   = errors.New("unknown block")
	errDuplicateBlock = errors.New("duplicate block")
	errInvalidGenesis = errors.New("genesis can't be invalidated")
)

type Block struct {
	id       ids.ID
	parent   *Block
	height   uint64
	invalid  bool
	children []*Block
}

func (b *Block) ID() ids.ID {
	return b.id
}

func (b *Block) Height() uint64 {
	return b.height
}

// Parent returns nil for the genesis block.
func (b *Block) Parent() *Block {
	return b.parent
}

// Ancestor returns the ancestor of [b] at [height], or nil if [b] is lower
// than [height].
func (b *Block) Ancestor(height uint64) *Block {
	if b == nil || height > b.height {
		return nil
	}
	for b.height > height {
		b = b.parent
	}
	return b
}

// Index is a tree of blocks rooted at a genesis block. The active chain ends
// at the highest valid block, the first one seen wins ties.
//
// Index is safe for concurrent use.
type Index struct {
	lock            sync.RWMutex
	blocks          map[ids.ID]*Block
	tip             *Block
	finalizationTip *Block
	// Blocks that were invalidated by avalanche. They are never polled again.
	invalidated *bloom.RollingFilter
}

func New(genesisID ids.ID, invalidatedFilterSize uint64) (*Index, error) {
	invalidated, err := bloom.NewRollingFilter(invalidatedFilterSize, invalidatedFalsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create invalidated blocks filter: %w", err)
	}
	genesis := &Block{id: genesisID}
	return &Index{
		blocks:      map[ids.ID]*Block{genesisID: genesis},
		tip:         genesis,
		invalidated: invalidated,
	}, nil
}

// Add inserts a block on top of [parentID]. Children of invalid blocks are
// invalid.
func (i *Index) Add(id, parentID ids.ID) (*Block, error) {
	i.lock.Lock()
	defer i.lock.Unlock()

	if _, ok := i.blocks[id]; ok {
		return nil, fmt.Errorf("%w: %s", errDuplicateBlock, id)
	}
	parent, ok := i.blocks[parentID]
	if !ok {
		return nil, fmt.Errorf("%w: parent %s of %s", ErrUnknownBlock, parentID, id)
	}

	b := &Block{
		id:      id,
		parent:  parent,
		height:  parent.height + 1,
		invalid: parent.invalid,
	}
	parent.children = append(parent.children, b)
	i.blocks[id] = b
	if !b.invalid && b.height > i.tip.height {
		i.tip = b
	}
	return b, nil
}

// Invalidate marks the block and its descendants as invalid and moves the
// active chain away from them.
func (i *Index) Invalidate(id ids.ID) error {
	i.lock.Lock()
	defer i.lock.Unlock()

	b, ok := i.blocks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBlock, id)
	}
	if b.parent == nil {
		return errInvalidGenesis
	}
	i.invalidate(b)
	return nil
}

func (i *Index) invalidate(b *Block) {
	toInvalidate := []*Block{b}
	for len(toInvalidate) > 0 {
		next := toInvalidate[len(toInvalidate)-1]
		toInvalidate = toInvalidate[:len(toInvalidate)-1]
		next.invalid = true
		toInvalidate = append(toInvalidate, next.children...)
	}

	if i.tip.Ancestor(b.height) != b {
		return
	}

	// The tip was invalidated, pick the highest valid block.
	i.tip = b.parent
	for _, candidate := range i.blocks {
		if !candidate.invalid && candidate.height > i.tip.height {
			i.tip = candidate
		}
	}
}

func (i *Index) Get(id ids.ID) (*Block, bool) {
	i.lock.RLock()
	defer i.lock.RUnlock()

	b, ok := i.blocks[id]
	return b, ok
}

func (i *Index) Tip() *Block {
	i.lock.RLock()
	defer i.lock.RUnlock()

	return i.tip
}

// FinalizationTip returns the highest block finalized by avalanche, if any.
func (i *Index) FinalizationTip() (*Block, bool) {
	i.lock.RLock()
	defer i.lock.RUnlock()

	return i.finalizationTip, i.finalizationTip != nil
}

func (i *Index) Lookup(id ids.ID) (preconsensus.Item, bool) {
	b, ok := i.Get(id)
	if !ok {
		return nil, false
	}
	return b, true
}

// IsWorthPolling returns false for invalid blocks and for blocks that are
// already final.
func (i *Index) IsWorthPolling(item preconsensus.Item) bool {
	b, ok := item.(*Block)
	if !ok {
		return false
	}

	i.lock.RLock()
	defer i.lock.RUnlock()

	switch {
	case b.invalid:
		return false
	case i.invalidated.Contains(b.id):
		return false
	case i.finalizationTip.Ancestor(b.height) == b:
		return false
	default:
		return true
	}
}

// IsAccepted returns true if the block is part of the active chain.
func (i *Index) IsAccepted(item preconsensus.Item) bool {
	b, ok := item.(*Block)
	if !ok {
		return false
	}

	i.lock.RLock()
	defer i.lock.RUnlock()

	return i.tip.Ancestor(b.height) == b
}

// Apply records the outcome of the votes on blocks. Finalized blocks move the
// finalization tip forward and invalid blocks are never polled again.
func (i *Index) Apply(updates []preconsensus.StatusUpdate) {
	i.lock.Lock()
	defer i.lock.Unlock()

	for _, update := range updates {
		if update.Inv.Type != message.MsgBlock {
			continue
		}
		b, ok := i.blocks[update.Inv.ID]
		if !ok {
			continue
		}

		switch update.Status {
		case preconsensus.Invalid:
			i.invalidated.Add(b.id)
			if b.parent != nil {
				i.invalidate(b)
			}
		case preconsensus.Finalized:
			if i.finalizationTip.Ancestor(b.height) == b {
				continue
			}
			i.finalizationTip = b
		}
	}
}
