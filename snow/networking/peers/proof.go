// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package peers

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/ava-labs/avalanche-preconsensus/ids"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"

	pb "github.com/ava-labs/avalanche-preconsensus/proto/pb/peers"
)

var (
	ErrInvalidProof = errors.New("invalid proof")

	errZeroScore     = errors.New("proof has no stake")
	errExpired       = errors.New("proof expired")
	errBadSignature  = errors.New("proof signature doesn't match its master key")
	errMissingMaster = errors.New("proof has no master key")
	errSignatureLen  = errors.New("proof signature has wrong length")
)

// Proof binds stake to a master key. Nodes attach to a proof to be polled on
// behalf of the stake it commits.
type Proof struct {
	Sequence uint64
	// Expiration is a unix timestamp. Zero means the proof never expires.
	Expiration int64
	Score      uint32
	Master     *secp256k1.PublicKey
	Signature  [secp256k1.SignatureLen]byte

	id ids.ID
}

// NewProof returns a proof for [score] signed by [master].
func NewProof(master *secp256k1.PrivateKey, sequence uint64, expiration int64, score uint32) (*Proof, error) {
	p := &Proof{
		Sequence:   sequence,
		Expiration: expiration,
		Score:      score,
		Master:     master.PublicKey(),
	}
	unsignedBytes, err := p.unsignedBytes()
	if err != nil {
		return nil, err
	}
	p.id = hashing.ComputeHash256Array(unsignedBytes)

	sig, err := master.SignHash(p.id[:])
	if err != nil {
		return nil, err
	}
	p.Signature = sig
	return p, nil
}

// ID commits to every field but the signature.
func (p *Proof) ID() ids.ID {
	return p.id
}

// MasterAddress is the hex encoded address of the master key. Proofs that
// share a master address are backed by the same stake holder.
func (p *Proof) MasterAddress() string {
	addr := p.Master.Address()
	return hex.EncodeToString(addr[:])
}

// unsignedBytes is the preimage of the proof ID.
func (p *Proof) unsignedBytes() ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(&pb.Proof{
		Sequence:   p.Sequence,
		Expiration: p.Expiration,
		Score:      p.Score,
		Master:     p.Master.Bytes(),
	})
}

func (p *Proof) Bytes() ([]byte, error) {
	return proto.Marshal(&pb.Proof{
		Sequence:   p.Sequence,
		Expiration: p.Expiration,
		Score:      p.Score,
		Master:     p.Master.Bytes(),
		Signature:  p.Signature[:],
	})
}

// ParseProof decodes a proof. The signature is not verified.
func ParseProof(b []byte) (*Proof, error) {
	var msg pb.Proof
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("couldn't parse proof: %w", err)
	}
	if len(msg.GetMaster()) == 0 {
		return nil, errMissingMaster
	}
	master, err := secp256k1.ToPublicKey(msg.GetMaster())
	if err != nil {
		return nil, err
	}
	sig := msg.GetSignature()
	if len(sig) != secp256k1.SignatureLen {
		return nil, fmt.Errorf("%w: %d", errSignatureLen, len(sig))
	}

	p := &Proof{
		Sequence:   msg.GetSequence(),
		Expiration: msg.GetExpiration(),
		Score:      msg.GetScore(),
		Master:     master,
	}
	copy(p.Signature[:], sig)
	unsignedBytes, err := p.unsignedBytes()
	if err != nil {
		return nil, err
	}
	p.id = hashing.ComputeHash256Array(unsignedBytes)
	return p, nil
}

// Verify returns nil if the proof commits stake, has not expired at [now] and
// was signed by its master key.
func (p *Proof) Verify(now time.Time) error {
	switch {
	case p.Master == nil:
		return fmt.Errorf("%w: %w", ErrInvalidProof, errMissingMaster)
	case p.Score == 0:
		return fmt.Errorf("%w: %w", ErrInvalidProof, errZeroScore)
	case p.Expiration != 0 && p.Expiration <= now.Unix():
		return fmt.Errorf("%w: %w at %d", ErrInvalidProof, errExpired, p.Expiration)
	case !p.Master.VerifyHash(p.id[:], p.Signature[:]):
		return fmt.Errorf("%w: %w", ErrInvalidProof, errBadSignature)
	default:
		return nil
	}
}
