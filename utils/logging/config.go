// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"strings"
)

// Format modes available
const (
	Plain Format = iota
	JSON
)

var errUnknownFormat = errors.New("unknown format")

// Format of the displayed and persisted logs
type Format int

// ToFormat converts a user supplied string into a log format
func ToFormat(f string) (Format, error) {
	switch strings.ToUpper(f) {
	case "PLAIN":
		return Plain, nil
	case "JSON":
		return JSON, nil
	default:
		return Plain, fmt.Errorf("%w: %s", errUnknownFormat, f)
	}
}

func (f Format) String() string {
	switch f {
	case Plain:
		return "PLAIN"
	case JSON:
		return "JSON"
	default:
		return "UNKNOWN"
	}
}

// RotatingWriterConfig configures the on-disk rotation of log files.
type RotatingWriterConfig struct {
	MaxSize   int    `json:"maxSize"` // in megabytes
	MaxFiles  int    `json:"maxFiles"`
	MaxAge    int    `json:"maxAge"` // in days
	Directory string `json:"directory"`
	Compress  bool   `json:"compress"`
}

// Config defines the configuration of a logger
type Config struct {
	RotatingWriterConfig
	DisableWriterDisplaying bool   `json:"disableWriterDisplaying"`
	LogLevel                Level  `json:"logLevel"`
	DisplayLevel            Level  `json:"displayLevel"`
	LogFormat               Format `json:"logFormat"`
	LoggerName              string `json:"loggerName"`
}

// DefaultConfig returns a Config that only displays to stdout at Info level.
func DefaultConfig() Config {
	return Config{
		RotatingWriterConfig: RotatingWriterConfig{
			MaxSize:  8, // 8 MB
			MaxFiles: 7,
			MaxAge:   30,
		},
		LogLevel:     Info,
		DisplayLevel: Info,
		LogFormat:    Plain,
	}
}
