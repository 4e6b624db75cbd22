// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
)

const EnvPrefix = "avalanche"

var (
	defaultDataDir = filepath.Join(os.ExpandEnv("$HOME"), ".avalanche-preconsensus")
	defaultLogDir  = filepath.Join(defaultDataDir, "logs")
)

func addProcessorFlags(fs *pflag.FlagSet) {
	params := preconsensus.DefaultParameters

	fs.Duration(QueryTimeoutKey, params.QueryTimeout, "Time before an unanswered poll is considered lost")
	fs.Duration(TimeStepKey, params.TimeStep, "Period of the polling event loop")
	fs.Int(MaxElementPollKey, params.MaxElementPoll, "Maximum number of items in a single poll")
	fs.Uint64(MinQuorumStakeKey, params.MinQuorumScore, "Minimum score registered proofs must commit before polling starts")
	fs.Float64(MinQuorumConnectedStakeRatioKey, params.MinQuorumConnectedScoreRatio, "Minimum ratio of the registered score that must be backed by connected nodes before polling starts")
	fs.Int(MinNodeCountKey, params.MinNodeCount, "Minimum number of connected nodes required to poll")
	fs.Uint64(FinalizedItemsFilterSizeKey, params.FinalizedItemsFilterSize, "Number of recently finalized items remembered")

	fs.Int(FinalizationScoreKey, params.VoteParams.FinalizationScore, "Number of agreeing rounds after which a decision is final")
	fs.Int(MaxInflightPollKey, params.VoteParams.MaxInflightPoll, "Maximum number of outstanding polls for a single item")
	fs.Int(QuorumSizeKey, params.VoteParams.QuorumSize, "Number of distinct voters remembered for each item")
	fs.Uint32(StaleVoteThresholdKey, params.VoteParams.StaleVoteThreshold, "Number of votes after which an item that isn't converging is dropped")
	fs.Uint32(StaleVoteFactorKey, params.VoteParams.StaleVoteFactor, "An item is stale once its confidence is below its vote count divided by this factor")
}

// BuildFlagSet returns the complete set of flags
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("avalanche-preconsensus", pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "Specifies a config file")
	fs.String(DataDirKey, defaultDataDir, "Directory where the peers are persisted")

	addProcessorFlags(fs)
	fs.String(SessionKeyKey, "", "Hex encoded private key used to sign responses. A random key is used if empty")
	fs.Bool(PersistPeersKey, true, "Whether the registered proofs are saved on shutdown and reloaded on startup")

	// Logging
	fs.String(LogsDirKey, defaultLogDir, "Logging directory")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level")
	fs.String(LogFormatKey, "plain", "The structure of log format. Should be one of {plain, json}")
	fs.Int(LogRotaterMaxSize, 8, "The maximum file size in megabytes of the log file before it gets rotated")
	fs.Int(LogRotaterMaxFiles, 7, "The maximum number of old log files to retain. 0 means retain all old log files")
	fs.Int(LogRotaterMaxAge, 0, "The maximum number of days to retain old log files based on the timestamp encoded in their filename. 0 means retain all old log files")
	fs.Bool(LogRotaterCompress, false, "Enables the compression of rotated log files through gzip")

	// Simulation
	fs.Int(NumNodesKey, 16, "Number of nodes in the simulated network")
	fs.Int(NumBlocksKey, 32, "Number of competing blocks to vote on")
	fs.Float64(ResponseLossKey, 0, "Probability that a response is dropped")
	fs.Duration(CooldownKey, 0, "Cooldown advertised in the responses")
	fs.Duration(DurationKey, time.Minute, "Maximum duration of the simulation")
	fs.String(MetricsAddrKey, "", "If set, address the prometheus metrics are served on")

	return fs
}
