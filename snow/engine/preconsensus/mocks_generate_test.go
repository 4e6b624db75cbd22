// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=${GOPACKAGE} -mock_names=Sender=MockSender
