// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/metric"
)

const opLabel = "op"

var _ Creator = (*creator)(nil)

// Creator encodes and decodes the messages exchanged while polling and
// tracks how many bytes went through it.
type Creator interface {
	Poll(p *Poll) ([]byte, error)
	SignedResponse(key *secp256k1.PrivateKey, r *Response) ([]byte, error)

	ParsePoll(b []byte) (*Poll, error)
	ParseSignedResponse(b []byte) (*SignedResponse, error)
}

type creator struct {
	maxElements int

	bytesEncoded *prometheus.CounterVec
	bytesDecoded *prometheus.CounterVec
	parseFailed  *prometheus.CounterVec
}

// NewCreator returns a Creator that refuses to decode messages with more than
// [maxElements] items.
func NewCreator(namespace string, registerer prometheus.Registerer, maxElements int) (Creator, error) {
	namespace = metric.AppendNamespace(namespace, "codec")
	c := &creator{
		maxElements: maxElements,
		bytesEncoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "encoded_bytes",
				Help:      "number of bytes encoded",
			},
			[]string{opLabel},
		),
		bytesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decoded_bytes",
				Help:      "number of bytes successfully decoded",
			},
			[]string{opLabel},
		),
		parseFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_failed",
				Help:      "number of messages that failed to decode",
			},
			[]string{opLabel},
		),
	}
	for _, op := range ops {
		labels := prometheus.Labels{opLabel: op.String()}
		c.bytesEncoded.With(labels)
		c.bytesDecoded.With(labels)
		c.parseFailed.With(labels)
	}

	err := errors.Join(
		registerer.Register(c.bytesEncoded),
		registerer.Register(c.bytesDecoded),
		registerer.Register(c.parseFailed),
	)
	return c, err
}

func (c *creator) Poll(p *Poll) ([]byte, error) {
	b, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	c.bytesEncoded.WithLabelValues(PollOp.String()).Add(float64(len(b)))
	return b, nil
}

func (c *creator) SignedResponse(key *secp256k1.PrivateKey, r *Response) ([]byte, error) {
	s, err := SignResponse(key, r)
	if err != nil {
		return nil, err
	}
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	c.bytesEncoded.WithLabelValues(ResponseOp.String()).Add(float64(len(b)))
	return b, nil
}

func (c *creator) ParsePoll(b []byte) (*Poll, error) {
	p, err := ParsePoll(b, c.maxElements)
	c.observeParse(PollOp, len(b), err)
	return p, err
}

func (c *creator) ParseSignedResponse(b []byte) (*SignedResponse, error) {
	s, err := ParseSignedResponse(b, c.maxElements)
	c.observeParse(ResponseOp, len(b), err)
	return s, err
}

func (c *creator) observeParse(op Op, size int, err error) {
	if err != nil {
		c.parseFailed.WithLabelValues(op.String()).Inc()
		return
	}
	c.bytesDecoded.WithLabelValues(op.String()).Add(float64(size))
}
