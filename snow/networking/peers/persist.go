// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package peers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	pb "github.com/ava-labs/avalanche-preconsensus/proto/pb/peers"
)

const dumpVersion uint64 = 1

var (
	versionKey  = []byte("version")
	proofPrefix = []byte("proof/")

	errUnsupportedVersion = errors.New("unsupported peers dump version")
)

// Dump replaces the peers stored in [db] with the currently registered ones.
func (m *Manager) Dump(db *leveldb.DB) error {
	batch := new(leveldb.Batch)

	iter := db.NewIterator(util.BytesPrefix(proofPrefix), nil)
	for iter.Next() {
		batch.Delete(iter.Key())
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to iterate over dumped peers: %w", err)
	}

	batch.Put(versionKey, binary.BigEndian.AppendUint64(nil, dumpVersion))
	for _, peer := range m.peers {
		proofID := peer.Proof.ID()
		proofBytes, err := peer.Proof.Bytes()
		if err != nil {
			return fmt.Errorf("failed to encode proof %s: %w", proofID, err)
		}
		peerBytes, err := proto.Marshal(&pb.DumpedPeer{
			Proof:            proofBytes,
			HasFinalized:     peer.HasFinalized,
			RegistrationTime: peer.RegistrationTime.Unix(),
		})
		if err != nil {
			return fmt.Errorf("failed to encode peer %s: %w", peer.ID, err)
		}
		batch.Put(append(append([]byte{}, proofPrefix...), proofID[:]...), peerBytes)
	}

	if err := db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to dump peers: %w", err)
	}
	m.log.Debug("dumped peers",
		zap.Int("numPeers", len(m.peers)),
	)
	return nil
}

// Load registers the peers stored in [db] and returns how many were
// registered. Proofs that are no longer valid are skipped.
func (m *Manager) Load(db *leveldb.DB) (int, error) {
	versionBytes, err := db.Get(versionKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(versionBytes) != 8 || binary.BigEndian.Uint64(versionBytes) != dumpVersion {
		return 0, errUnsupportedVersion
	}

	iter := db.NewIterator(util.BytesPrefix(proofPrefix), nil)
	defer iter.Release()

	numLoaded := 0
	for iter.Next() {
		var d pb.DumpedPeer
		if err := proto.Unmarshal(iter.Value(), &d); err != nil {
			return numLoaded, fmt.Errorf("failed to parse dumped peer %x: %w", iter.Key(), err)
		}
		proof, err := ParseProof(d.GetProof())
		if err != nil {
			return numLoaded, fmt.Errorf("failed to parse dumped proof %x: %w", iter.Key(), err)
		}
		if err := m.RegisterProof(proof); err != nil {
			m.log.Debug("skipping dumped proof",
				zap.Stringer("proofID", proof.ID()),
				zap.Error(err),
			)
			continue
		}

		peer := m.peersByProof[proof.ID()]
		peer.HasFinalized = d.GetHasFinalized()
		peer.RegistrationTime = time.Unix(d.GetRegistrationTime(), 0)
		numLoaded++
	}
	return numLoaded, iter.Error()
}
