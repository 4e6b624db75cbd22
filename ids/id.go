// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"
)

const IDLen = 32

var (
	// Empty is a useful all zero value
	Empty = ID{}

	ErrWrongIDLen    = errors.New("wrong ID length")
	errMissingQuotes = errors.New("first and last characters should be quotes")

	nullStr = "null"
)

// ID wraps a 32 byte hash used as an identifier for blocks, proofs and
// transactions.
type ID [IDLen]byte

// ToID attempt to convert a byte slice into an id
func ToID(bytes []byte) (ID, error) {
	if len(bytes) != IDLen {
		return ID{}, fmt.Errorf("%w: expected %d bytes but got %d", ErrWrongIDLen, IDLen, len(bytes))
	}
	var id ID
	copy(id[:], bytes)
	return id, nil
}

// FromString is the inverse of ID.String()
func FromString(idStr string) (ID, error) {
	b, err := hex.DecodeString(idStr)
	if err != nil {
		return ID{}, err
	}
	return ToID(b)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == nullStr { // If "null", do nothing
		return nil
	}
	lastIndex := len(str) - 1
	if lastIndex < 1 || str[0] != '"' || str[lastIndex] != '"' {
		return errMissingQuotes
	}

	var err error
	*id, err = FromString(str[1:lastIndex])
	return err
}

// Bytes returns the 32 byte hash as a slice. It is assumed this slice is not
// modified.
func (id ID) Bytes() []byte {
	return id[:]
}

// Hex returns a hex encoded string of this id.
func (id ID) Hex() string {
	return hex.EncodeToString(id.Bytes())
}

func (id ID) String() string {
	return id.Hex()
}

func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Prefix this id to create a more selective id. This can be used to store
// multiple values under the same key. For example:
// prefix1(id) -> confidence
// prefix2(id) -> vertex
// This will return a new id and not modify the original id.
func (id ID) Prefix(prefixes ...uint64) ID {
	packed := make([]byte, 0, len(prefixes)*8+IDLen)
	for _, prefix := range prefixes {
		packed = binary.BigEndian.AppendUint64(packed, prefix)
	}
	packed = append(packed, id[:]...)
	return hashing.ComputeHash256Array(packed)
}
