// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-preconsensus/config"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
)

// main runs an in-memory network of nodes voting on the same blocks until
// every node finalized them.
func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	c, err := config.GetConfig(v)
	if err != nil {
		fmt.Printf("couldn't load config: %s\n", err)
		os.Exit(1)
	}

	logFactory := logging.NewFactory(c.Logging)
	defer logFactory.Close()

	log, err := logFactory.Make("main")
	if err != nil {
		fmt.Printf("couldn't initialize logger: %s\n", err)
		os.Exit(1)
	}
	defer log.StopOnPanic()

	if err := run(log, c); err != nil {
		log.Error("simulation failed",
			zap.Error(err),
		)
		logFactory.Close()
		os.Exit(1)
	}
}

func run(log logging.Logger, c config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	net, err := newNetwork(log, c)
	if err != nil {
		return err
	}

	log.Info("starting network",
		zap.Int("numNodes", len(net.nodes)),
		zap.Int("numInvs", len(net.invs)),
		zap.Duration("duration", c.Simulation.Duration),
	)
	return net.run(ctx)
}
