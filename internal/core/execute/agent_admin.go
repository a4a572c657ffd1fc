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

// SetActive toggles the ACTIVE flag. Always permitted to the owner,
// regardless of staking.
type SetActive struct{}

func (SetActive) Type() protocol.OperationType { return protocol.OperationTypeSetActive }

func (SetActive) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.SetActive)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.SetActive), env.Body)
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	if body.Active {
		agent.Flags = agent.Flags.Set(protocol.FlagActive)
	} else {
		agent.Flags = agent.Flags.Clear(protocol.FlagActive)
	}

	err = st.Update(body.Agent, agent)
	if err != nil {
		return nil, err
	}

	return &protocol.AgentActiveSet{Creator: agent.Creator, Active: body.Active}, nil
}

// TransferOwner replaces the agent's owner. The creator is untouched, and
// the transfer takes effect immediately.
type TransferOwner struct{}

func (TransferOwner) Type() protocol.OperationType { return protocol.OperationTypeTransferOwner }

func (TransferOwner) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.TransferOwner)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.TransferOwner), env.Body)
	}

	if body.NewOwner.IsZero() {
		return nil, errors.InvalidOwner.With("new owner must not be the zero identity")
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	oldOwner := agent.Owner
	agent.Owner = body.NewOwner

	err = st.Update(body.Agent, agent)
	if err != nil {
		return nil, err
	}

	return &protocol.OwnerTransferred{Creator: agent.Creator, OldOwner: oldOwner, NewOwner: body.NewOwner}, nil
}

// CloseAgent destroys an agent record, making its address available for a
// future creation.
type CloseAgent struct{}

func (CloseAgent) Type() protocol.OperationType { return protocol.OperationTypeCloseAgent }

func (CloseAgent) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.CloseAgent)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CloseAgent), env.Body)
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	if agent.Active() {
		return nil, errors.AgentActive.With("deactivate the record before closing it")
	}
	if agent.HasStaking() {
		return nil, errors.StakingEnabled.With("a staking-enabled record cannot be closed")
	}

	// The environment returns the record's backing value to the recipient
	err = st.Batch().DeleteAccount(body.Agent)
	if err != nil {
		return nil, err
	}

	return &protocol.AgentClosed{Creator: agent.Creator, Recipient: body.Recipient}, nil
}
