// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

// Op is an opcode
type Op byte

// Types of messages that may be sent between nodes
const (
	PollOp Op = iota
	ResponseOp
)

var ops = []Op{
	PollOp,
	ResponseOp,
}

func (op Op) String() string {
	switch op {
	case PollOp:
		return "poll"
	case ResponseOp:
		return "response"
	default:
		return "Unknown Op"
	}
}
