// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// #nosec G101
const (
	ConfigFileKey = "config-file"

	// Polling
	QueryTimeoutKey                 = "ava-timeout"
	TimeStepKey                     = "ava-time-step"
	MaxElementPollKey               = "ava-max-element-poll"
	MinQuorumStakeKey               = "ava-min-quorum-stake"
	MinQuorumConnectedStakeRatioKey = "ava-min-quorum-connected-stake-ratio"
	MinNodeCountKey                 = "ava-min-node-count"
	FinalizedItemsFilterSizeKey     = "ava-finalized-items-filter-size"

	// Vote records
	FinalizationScoreKey  = "ava-finalization-score"
	MaxInflightPollKey    = "ava-max-inflight-poll"
	QuorumSizeKey         = "ava-quorum-size"
	StaleVoteThresholdKey = "ava-stale-vote-threshold"
	StaleVoteFactorKey    = "ava-stale-vote-factor"

	SessionKeyKey   = "ava-session-key"
	PersistPeersKey = "persist-ava-peers"
	DataDirKey      = "data-dir"

	// Logging
	LogsDirKey         = "log-dir"
	LogLevelKey        = "log-level"
	LogDisplayLevelKey = "log-display-level"
	LogFormatKey       = "log-format"
	LogRotaterMaxSize  = "log-rotater-max-size"
	LogRotaterMaxFiles = "log-rotater-max-files"
	LogRotaterMaxAge   = "log-rotater-max-age"
	LogRotaterCompress = "log-rotater-compress-enabled"

	// Simulation
	NumNodesKey     = "num-nodes"
	NumBlocksKey    = "num-blocks"
	ResponseLossKey = "response-loss"
	CooldownKey     = "cooldown"
	DurationKey     = "duration"
	MetricsAddrKey  = "metrics-addr"
)
