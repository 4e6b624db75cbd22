// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"
)

const (
	// SignatureLen is the number of bytes in a serialized schnorr signature
	SignatureLen = 64

	// PrivateKeyLen is the number of bytes in a secp256k1 private key
	PrivateKeyLen = 32

	// PublicKeyLen is the number of bytes in a secp256k1 compressed public key
	PublicKeyLen = 33
)

var (
	ErrInvalidSig             = errors.New("invalid signature")
	errInvalidPrivateKeyLen   = fmt.Errorf("private key has unexpected length, expected %d", PrivateKeyLen)
	errInvalidPublicKeyLen    = fmt.Errorf("public key has unexpected length, expected %d", PublicKeyLen)
	errInvalidSigLen          = fmt.Errorf("signature has unexpected length, expected %d", SignatureLen)
	errInvalidHashLen         = fmt.Errorf("hash has unexpected length, expected %d", hashing.HashLen)
	errMutatedSigVerification = errors.New("signature failed to verify against its own key")
)

func NewPrivateKey() (*PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return newPrivateKey(k), nil
}

// Keys are immutable once built so they can be shared between goroutines.
func newPrivateKey(sk *secp256k1.PrivateKey) *PrivateKey {
	return &PrivateKey{
		sk:    sk,
		pk:    newPublicKey(sk.PubKey()),
		bytes: sk.Serialize(),
	}
}

func newPublicKey(pk *secp256k1.PublicKey) *PublicKey {
	bytes := pk.SerializeCompressed()
	return &PublicKey{
		pk:    pk,
		bytes: bytes,
	}
}

func ToPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return nil, errInvalidPrivateKeyLen
	}
	return newPrivateKey(secp256k1.PrivKeyFromBytes(b)), nil
}

func ToPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeyLen {
		return nil, errInvalidPublicKeyLen
	}

	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return newPublicKey(key), nil
}

type PublicKey struct {
	pk    *secp256k1.PublicKey
	bytes []byte
}

// Verify hashes [msg] and checks [sig] against it.
func (k *PublicKey) Verify(msg, sig []byte) bool {
	return k.VerifyHash(hashing.ComputeHash256(msg), sig)
}

// VerifyHash checks a serialized schnorr signature over a 32 byte digest.
func (k *PublicKey) VerifyHash(hash, sig []byte) bool {
	if len(hash) != hashing.HashLen || len(sig) != SignatureLen {
		return false
	}
	s, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return s.Verify(hash, k.pk)
}

// Address returns ripemd160(sha256(compressed public key)).
func (k *PublicKey) Address() hashing.Hash160 {
	return hashing.PubkeyBytesToAddress(k.bytes)
}

func (k *PublicKey) Bytes() []byte {
	return k.bytes
}

func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.pk.IsEqual(other.pk)
}

func (k *PublicKey) String() string {
	return fmt.Sprintf("%x", k.Bytes())
}

type PrivateKey struct {
	sk    *secp256k1.PrivateKey
	pk    *PublicKey
	bytes []byte
}

func (k *PrivateKey) PublicKey() *PublicKey {
	return k.pk
}

// Sign hashes [msg] and signs the digest.
func (k *PrivateKey) Sign(msg []byte) ([SignatureLen]byte, error) {
	return k.SignHash(hashing.ComputeHash256(msg))
}

// SignHash produces a 64 byte schnorr signature over a 32 byte digest.
func (k *PrivateKey) SignHash(hash []byte) ([SignatureLen]byte, error) {
	var out [SignatureLen]byte
	if len(hash) != hashing.HashLen {
		return out, errInvalidHashLen
	}
	sig, err := schnorr.Sign(k.sk, hash)
	if err != nil {
		return out, err
	}
	b := sig.Serialize()
	if len(b) != SignatureLen {
		return out, errInvalidSigLen
	}
	copy(out[:], b)
	if !k.PublicKey().VerifyHash(hash, out[:]) {
		return out, errMutatedSigVerification
	}
	return out, nil
}

func (k *PrivateKey) Bytes() []byte {
	return k.bytes
}
