// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute

import (
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// SetMemory replaces an agent's memory fields according to the declared
// mode's truth table.
type SetMemory struct{}

func (SetMemory) Type() protocol.OperationType { return protocol.OperationTypeSetMemory }

func (SetMemory) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.SetMemory)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.SetMemory), env.Body)
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	if agent.Locked() {
		return nil, errors.MemoryLocked.With("memory is locked against mutation")
	}

	err = agent.ApplyMemory(body.Mode, body.Ptr, body.Hash)
	if err != nil {
		return nil, err
	}

	err = st.Update(body.Agent, agent)
	if err != nil {
		return nil, err
	}

	return &protocol.MemoryUpdated{
		Creator:    agent.Creator,
		Mode:       agent.MemoryMode,
		PtrPreview: protocol.PreviewString(body.Ptr),
		Hash:       agent.MemoryHash,
	}, nil
}

// LockMemory sets the LOCKED flag. A pure flag transition, and irreversible.
type LockMemory struct{}

func (LockMemory) Type() protocol.OperationType { return protocol.OperationTypeLockMemory }

func (LockMemory) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.LockMemory)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.LockMemory), env.Body)
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	agent.Flags = agent.Flags.Set(protocol.FlagLocked)

	err = st.Update(body.Agent, agent)
	if err != nil {
		return nil, err
	}

	return &protocol.MemoryLocked{Creator: agent.Creator}, nil
}
