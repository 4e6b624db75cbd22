// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/proto/pb/preconsensus"
)

var ErrTooManyElements = errors.New("too many elements")

// Poll asks a node for its opinion on up to MaxElementPoll items.
type Poll struct {
	Round uint64
	Invs  []Inv
}

// Vote is the answer for a single item. An Error of 0 is a yes vote. A
// negative Error, when interpreted as an int32, is an abstention.
type Vote struct {
	Error uint32
	ID    ids.ID
}

// Response answers the poll with the same Round. Votes are in the same order
// as the polled Invs.
type Response struct {
	Round uint64
	// Cooldown is the number of milliseconds the responder wants the poller
	// to wait before querying it again.
	Cooldown uint32
	Votes    []Vote
}

// Bytes returns the wire encoding of the poll.
func (p *Poll) Bytes() ([]byte, error) {
	msg := &preconsensus.Poll{
		Round: p.Round,
		Invs:  make([]*preconsensus.Inv, len(p.Invs)),
	}
	for i, inv := range p.Invs {
		msg.Invs[i] = &preconsensus.Inv{
			Type: uint32(inv.Type),
			Id:   inv.ID.Bytes(),
		}
	}
	return proto.Marshal(msg)
}

// Bytes returns the wire encoding of the response.
func (r *Response) Bytes() ([]byte, error) {
	msg := &preconsensus.Response{
		Round:    r.Round,
		Cooldown: r.Cooldown,
		Votes:    make([]*preconsensus.Vote, len(r.Votes)),
	}
	for i, vote := range r.Votes {
		msg.Votes[i] = &preconsensus.Vote{
			Error: vote.Error,
			Id:    vote.ID.Bytes(),
		}
	}
	return proto.Marshal(msg)
}

// ParsePoll decodes a poll carrying at most [maxElements] invs.
func ParsePoll(b []byte, maxElements int) (*Poll, error) {
	var msg preconsensus.Poll
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("couldn't parse poll: %w", err)
	}
	invs := msg.GetInvs()
	if len(invs) > maxElements {
		return nil, fmt.Errorf("couldn't parse poll: %w: %d > %d", ErrTooManyElements, len(invs), maxElements)
	}

	p := &Poll{Round: msg.GetRound()}
	if len(invs) > 0 {
		p.Invs = make([]Inv, len(invs))
	}
	for i, inv := range invs {
		id, err := ids.ToID(inv.GetId())
		if err != nil {
			return nil, fmt.Errorf("couldn't parse poll inv %d: %w", i, err)
		}
		p.Invs[i] = Inv{
			Type: InvType(inv.GetType()),
			ID:   id,
		}
	}
	return p, nil
}

// ParseResponse decodes a response carrying at most [maxElements] votes.
func ParseResponse(b []byte, maxElements int) (*Response, error) {
	var msg preconsensus.Response
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("couldn't parse response: %w", err)
	}
	votes := msg.GetVotes()
	if len(votes) > maxElements {
		return nil, fmt.Errorf("couldn't parse response: %w: %d > %d", ErrTooManyElements, len(votes), maxElements)
	}

	r := &Response{
		Round:    msg.GetRound(),
		Cooldown: msg.GetCooldown(),
	}
	if len(votes) > 0 {
		r.Votes = make([]Vote, len(votes))
	}
	for i, vote := range votes {
		id, err := ids.ToID(vote.GetId())
		if err != nil {
			return nil, fmt.Errorf("couldn't parse response vote %d: %w", i, err)
		}
		r.Votes[i] = Vote{
			Error: vote.GetError(),
			ID:    id,
		}
	}
	return r, nil
}
