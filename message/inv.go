// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"fmt"

	"github.com/ava-labs/avalanche-preconsensus/ids"
)

// InvType is the kind of item an inventory entry refers to.
type InvType uint32

const (
	MsgError InvType = iota
	MsgTx
	MsgBlock
	MsgProof
)

func (t InvType) String() string {
	switch t {
	case MsgError:
		return "error"
	case MsgTx:
		return "tx"
	case MsgBlock:
		return "block"
	case MsgProof:
		return "proof"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// Inv identifies an item that is being voted on.
type Inv struct {
	Type InvType
	ID   ids.ID
}

func NewBlockInv(id ids.ID) Inv {
	return Inv{
		Type: MsgBlock,
		ID:   id,
	}
}

func (i Inv) String() string {
	return fmt.Sprintf("%s %s", i.Type, i.ID)
}
