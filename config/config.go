// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ava-labs/avalanche-preconsensus/snow/consensus/voterecord"
	"github.com/ava-labs/avalanche-preconsensus/snow/engine/preconsensus"
	"github.com/ava-labs/avalanche-preconsensus/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-preconsensus/utils/logging"
)

var (
	errInvalidNumNodes     = errors.New("num-nodes must be positive")
	errInvalidNumBlocks    = errors.New("num-blocks must be positive")
	errInvalidResponseLoss = errors.New("response-loss must be in [0, 1)")
)

// SimulationConfig describes the in-process network run by the binary.
type SimulationConfig struct {
	NumNodes     int           `json:"numNodes"`
	NumBlocks    int           `json:"numBlocks"`
	ResponseLoss float64       `json:"responseLoss"`
	Cooldown     time.Duration `json:"cooldown"`
	Duration     time.Duration `json:"duration"`
	MetricsAddr  string        `json:"metricsAddr"`
}

type Config struct {
	Processor preconsensus.Parameters `json:"processor"`
	Logging   logging.Config          `json:"logging"`

	// SessionKey is nil if a random key should be generated.
	SessionKey   *secp256k1.PrivateKey `json:"-"`
	PersistPeers bool                  `json:"persistPeers"`
	DataDir      string                `json:"dataDir"`

	Simulation SimulationConfig `json:"simulation"`
}

func getProcessorParameters(v *viper.Viper) (preconsensus.Parameters, error) {
	params := preconsensus.Parameters{
		QueryTimeout:                 v.GetDuration(QueryTimeoutKey),
		TimeStep:                     v.GetDuration(TimeStepKey),
		MaxElementPoll:               v.GetInt(MaxElementPollKey),
		MinQuorumScore:               v.GetUint64(MinQuorumStakeKey),
		MinQuorumConnectedScoreRatio: v.GetFloat64(MinQuorumConnectedStakeRatioKey),
		MinNodeCount:                 v.GetInt(MinNodeCountKey),
		FinalizedItemsFilterSize:     v.GetUint64(FinalizedItemsFilterSizeKey),
		VoteParams: voterecord.Parameters{
			FinalizationScore:  v.GetInt(FinalizationScoreKey),
			MaxInflightPoll:    v.GetInt(MaxInflightPollKey),
			QuorumSize:         v.GetInt(QuorumSizeKey),
			StaleVoteThreshold: v.GetUint32(StaleVoteThresholdKey),
			StaleVoteFactor:    v.GetUint32(StaleVoteFactorKey),
		},
	}
	return params, params.Verify()
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	loggingConfig := logging.DefaultConfig()
	loggingConfig.Directory = os.ExpandEnv(v.GetString(LogsDirKey))
	loggingConfig.MaxSize = v.GetInt(LogRotaterMaxSize)
	loggingConfig.MaxFiles = v.GetInt(LogRotaterMaxFiles)
	loggingConfig.MaxAge = v.GetInt(LogRotaterMaxAge)
	loggingConfig.Compress = v.GetBool(LogRotaterCompress)

	var err error
	loggingConfig.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return loggingConfig, err
	}

	logDisplayLevel := v.GetString(LogDisplayLevelKey)
	if logDisplayLevel == "" {
		logDisplayLevel = v.GetString(LogLevelKey)
	}
	loggingConfig.DisplayLevel, err = logging.ToLevel(logDisplayLevel)
	if err != nil {
		return loggingConfig, err
	}

	loggingConfig.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey))
	return loggingConfig, err
}

func getSessionKey(v *viper.Viper) (*secp256k1.PrivateKey, error) {
	keyStr := strings.TrimPrefix(v.GetString(SessionKeyKey), "0x")
	if keyStr == "" {
		return nil, nil
	}
	keyBytes, err := hex.DecodeString(keyStr)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode %s: %w", SessionKeyKey, err)
	}
	key, err := secp256k1.ToPrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", SessionKeyKey, err)
	}
	return key, nil
}

func getSimulationConfig(v *viper.Viper) (SimulationConfig, error) {
	config := SimulationConfig{
		NumNodes:     v.GetInt(NumNodesKey),
		NumBlocks:    v.GetInt(NumBlocksKey),
		ResponseLoss: v.GetFloat64(ResponseLossKey),
		Cooldown:     v.GetDuration(CooldownKey),
		Duration:     v.GetDuration(DurationKey),
		MetricsAddr:  v.GetString(MetricsAddrKey),
	}
	switch {
	case config.NumNodes <= 0:
		return config, fmt.Errorf("%w: %d", errInvalidNumNodes, config.NumNodes)
	case config.NumBlocks <= 0:
		return config, fmt.Errorf("%w: %d", errInvalidNumBlocks, config.NumBlocks)
	case config.ResponseLoss < 0 || config.ResponseLoss >= 1:
		return config, fmt.Errorf("%w: %f", errInvalidResponseLoss, config.ResponseLoss)
	}
	return config, nil
}

// GetConfig builds the configuration from the values defined in [v].
func GetConfig(v *viper.Viper) (Config, error) {
	var (
		config Config
		err    error
	)

	config.Processor, err = getProcessorParameters(v)
	if err != nil {
		return Config{}, err
	}

	config.Logging, err = getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}

	config.SessionKey, err = getSessionKey(v)
	if err != nil {
		return Config{}, err
	}
	config.PersistPeers = v.GetBool(PersistPeersKey)
	config.DataDir = os.ExpandEnv(v.GetString(DataDirKey))

	config.Simulation, err = getSimulationConfig(v)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
