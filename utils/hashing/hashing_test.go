// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeHash256(t *testing.T) {
	require := require.New(t)

	// sha256("abc")
	expected, err := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	require.NoError(err)
	require.Equal(expected, ComputeHash256([]byte("abc")))
}

func TestComputeHash160(t *testing.T) {
	require := require.New(t)

	// ripemd160("abc")
	expected, err := hex.DecodeString("8eb208f7e05d987a9b044a8e98c6b087f15a0bfc")
	require.NoError(err)
	require.Equal(expected, ComputeHash160([]byte("abc")))

	arr := ComputeHash160Array([]byte("abc"))
	require.Equal(expected, arr[:])
}

func TestToHash160(t *testing.T) {
	_, err := ToHash160(make([]byte, AddrLen-1))
	require.ErrorIs(t, err, ErrInvalidHashLen)
}

func TestPubkeyBytesToAddress(t *testing.T) {
	key := []byte("public key")
	expected := ComputeHash160Array(ComputeHash256(key))
	require.Equal(t, expected, PubkeyBytesToAddress(key))
}
