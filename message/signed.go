// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/ava-labs/avalanche-preconsensus/proto/pb/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"
)

var (
	ErrInvalidSignature = errors.New("invalid response signature")

	errSignatureLen = errors.New("signature has wrong length")
)

// SignedResponse wraps a response with a detached signature made with the
// responder's session key.
type SignedResponse struct {
	Response  Response
	Signature [secp256k1.SignatureLen]byte

	// responseBytes is the encoding of Response the signature was made over.
	responseBytes []byte
}

// SignResponse signs the sha256 digest of the response encoding.
func SignResponse(key *secp256k1.PrivateKey, r *Response) (*SignedResponse, error) {
	responseBytes, err := r.Bytes()
	if err != nil {
		return nil, fmt.Errorf("couldn't encode response: %w", err)
	}
	sig, err := key.SignHash(hashing.ComputeHash256(responseBytes))
	if err != nil {
		return nil, fmt.Errorf("couldn't sign response: %w", err)
	}
	return &SignedResponse{
		Response:      *r,
		Signature:     sig,
		responseBytes: responseBytes,
	}, nil
}

// VerifyResponse returns nil if [s] was signed by the private key of [key].
// The signature is checked against the response bytes as they were received.
func VerifyResponse(key *secp256k1.PublicKey, s *SignedResponse) error {
	hash := hashing.ComputeHash256(s.responseBytes)
	if !key.VerifyHash(hash, s.Signature[:]) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *SignedResponse) Bytes() ([]byte, error) {
	return proto.Marshal(&preconsensus.SignedResponse{
		Response:  s.responseBytes,
		Signature: s.Signature[:],
	})
}

// ParseSignedResponse decodes a signed response carrying at most
// [maxElements] votes. The signature is not verified.
func ParseSignedResponse(b []byte, maxElements int) (*SignedResponse, error) {
	var msg preconsensus.SignedResponse
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("couldn't parse signed response: %w", err)
	}
	sig := msg.GetSignature()
	if len(sig) != secp256k1.SignatureLen {
		return nil, fmt.Errorf("couldn't parse signed response: %w: %d", errSignatureLen, len(sig))
	}

	responseBytes := msg.GetResponse()
	r, err := ParseResponse(responseBytes, maxElements)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse signed response: %w", err)
	}
	s := &SignedResponse{
		Response:      *r,
		responseBytes: responseBytes,
	}
	copy(s.Signature[:], sig)
	return s, nil
}
