// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package execute implements the operation executors. Each operation is a
// single synchronous validate-then-apply step over a batch; the executor
// serializes operations, so no two mutations to the same record are ever
// applied concurrently.
package execute

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/internal/token"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// OperationExecutor executes one type of operation.
type OperationExecutor interface {
	Type() protocol.OperationType
	Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error)
}

// Options configure an Executor.
type Options struct {
	Database *database.Database
	Ledger   token.Ledger
	Logger   zerolog.Logger

	// Now is the environment clock. Defaults to time.Now.
	Now func() time.Time
}

// Executor validates and applies operations.
type Executor struct {
	mu        sync.Mutex
	db        *database.Database
	ledger    token.Ledger
	logger    zerolog.Logger
	now       func() time.Time
	executors map[protocol.OperationType]OperationExecutor
}

// NewExecutor creates an executor with every operation registered.
func NewExecutor(opts Options) (*Executor, error) {
	if opts.Database == nil {
		return nil, errors.InternalError.With("database is required")
	}
	if opts.Ledger == nil {
		opts.Ledger = token.NewLedger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	x := &Executor{
		db:        opts.Database,
		ledger:    opts.Ledger,
		logger:    opts.Logger.With().Str("module", "executor").Logger(),
		now:       opts.Now,
		executors: map[protocol.OperationType]OperationExecutor{},
	}

	for _, op := range []OperationExecutor{
		CreateAgent{},
		SetCard{},
		SetMemory{},
		LockMemory{},
		SetActive{},
		TransferOwner{},
		CloseAgent{},
		InitProgramState{},
		CreateStakingPool{},
		UpdateMinStake{},
		InitStake{},
		Stake{},
		WithdrawStake{},
		CreateAgentWithPool{},
	} {
		if _, ok := x.executors[op.Type()]; ok {
			return nil, errors.InternalError.WithFormat("duplicate executor for %v", op.Type())
		}
		x.executors[op.Type()] = op
	}

	return x, nil
}

// Execute validates and applies one operation. The first violated rule
// aborts the entire operation with no partial effect.
func (x *Executor) Execute(env *protocol.Envelope) (protocol.Event, error) {
	if env == nil || env.Body == nil {
		return nil, errors.InternalError.With("nil operation")
	}

	exec, ok := x.executors[env.Body.Type()]
	if !ok {
		return nil, errors.InternalError.WithFormat("no executor for %v", env.Body.Type())
	}

	// The environment applies operations one at a time
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(true)
	defer batch.Discard()

	st := &StateManager{
		batch:     batch,
		Ledger:    x.ledger,
		Signer:    env.Signer,
		Timestamp: x.now(),
	}

	event, err := exec.Execute(st, env)
	if err != nil {
		mRejected.WithLabelValues(env.Body.Type().String()).Inc()
		x.logger.Info().
			Stringer("operation", env.Body.Type()).
			Stringer("signer", env.Signer).
			Err(err).
			Msg("Operation rejected")
		return nil, err
	}

	err = batch.Commit()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("commit: %w", err)
	}

	mExecuted.WithLabelValues(env.Body.Type().String()).Inc()
	x.logger.Debug().
		Stringer("operation", env.Body.Type()).
		Stringer("signer", env.Signer).
		Str("event", event.EventType()).
		Msg("Operation applied")
	return event, nil
}
