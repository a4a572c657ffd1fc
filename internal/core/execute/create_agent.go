// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// CreateAgent creates an agent record at the address derived from the
// creator identity.
type CreateAgent struct{}

func (CreateAgent) Type() protocol.OperationType { return protocol.OperationTypeCreateAgent }

func (CreateAgent) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.CreateAgent)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CreateAgent), env.Body)
	}

	agent, addr, err := createAgentRecord(st, body.Creator, body.CardURI, body.CardHash, body.HasStaking, body.Memory)
	if err != nil {
		return nil, err
	}

	return &protocol.AgentCreated{Creator: agent.Creator, Owner: agent.Owner, Agent: addr}, nil
}

// createAgentRecord validates and creates an agent record. Shared with the
// composite create-with-pool operation.
func createAgentRecord(st *StateManager, creator address.Address, cardURI string, cardHash [32]byte, hasStaking bool, memory *protocol.MemoryFields) (*protocol.AgentRecord, address.Address, error) {
	if creator != st.Signer {
		return nil, address.Zero, errors.NotAuthorized.With("creator must sign the creation")
	}

	err := protocol.ValidateCardURI(cardURI)
	if err != nil {
		return nil, address.Zero, err
	}

	addr, bump := address.ForAgent(creator)

	agent := new(protocol.AgentRecord)
	agent.Version = protocol.SchemaVersion
	agent.Creator = creator
	agent.Owner = creator
	agent.Bump = bump
	agent.SetCardURI(cardURI)
	agent.CardHash = cardHash
	agent.ClearMemory()

	if memory != nil {
		err = agent.ApplyMemory(memory.Mode, memory.Ptr, memory.Hash)
		if err != nil {
			return nil, address.Zero, err
		}
	}

	agent.Flags = protocol.FlagActive
	if hasStaking {
		agent.Flags = agent.Flags.Set(protocol.FlagHasStaking)
	}

	err = st.Create(addr, agent)
	if err != nil {
		return nil, address.Zero, err
	}
	return agent, addr, nil
}
