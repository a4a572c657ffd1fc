// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package logging sets up zerolog for the node and tests.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// New creates a logger writing to w. Format is "plain" or "json".
func New(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), errors.UnknownError.WithFormat("parse log level: %w", err)
	}

	switch strings.ToLower(format) {
	case "", "plain":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
		// Raw writer
	default:
		return zerolog.Nop(), errors.UnknownError.WithFormat("unknown log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
