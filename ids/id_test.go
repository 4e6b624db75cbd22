// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-preconsensus/utils/hashing"
)

func TestID(t *testing.T) {
	require := require.New(t)

	id := ID{24}
	idCopy := ID{24}
	prefixed := id.Prefix(0)

	require.Equal(idCopy, id)
	require.Equal(prefixed, id.Prefix(0))
	require.NotEqual(id, prefixed)
}

func TestIDPrefix(t *testing.T) {
	id := GenerateTestID()
	tests := []struct {
		name             string
		prefix           []uint64
		expectedPreimage []byte
	}{
		{
			name:             "empty prefix",
			prefix:           []uint64{},
			expectedPreimage: id[:],
		},
		{
			name:             "1 prefix",
			prefix:           []uint64{1},
			expectedPreimage: append(binary.BigEndian.AppendUint64(nil, 1), id[:]...),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expected := ID(hashing.ComputeHash256Array(test.expectedPreimage))
			require.Equal(t, expected, id.Prefix(test.prefix...))
		})
	}
}

func TestIDFromString(t *testing.T) {
	require := require.New(t)

	id := GenerateTestID()
	parsed, err := FromString(id.String())
	require.NoError(err)
	require.Equal(id, parsed)

	_, err = FromString("abcd")
	require.ErrorIs(err, ErrWrongIDLen)
}

func TestIDMarshalJSON(t *testing.T) {
	require := require.New(t)

	id := GenerateTestID()
	b, err := json.Marshal(id)
	require.NoError(err)

	var parsed ID
	require.NoError(json.Unmarshal(b, &parsed))
	require.Equal(id, parsed)

	require.ErrorIs(parsed.UnmarshalJSON([]byte("x")), errMissingQuotes)
}

func TestIDCompare(t *testing.T) {
	require := require.New(t)

	require.Zero(ID{1}.Compare(ID{1}))
	require.Negative(ID{1}.Compare(ID{2}))
	require.Positive(ID{2}.Compare(ID{1}))
}

func TestNodeIDString(t *testing.T) {
	require := require.New(t)

	require.Equal("Node-42", NodeID(42).String())
	require.Equal("Node--1", NoNode.String())
	require.Equal("Peer-7", PeerID(7).String())
}
