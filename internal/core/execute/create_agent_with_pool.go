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

// CreateAgentWithPool creates an agent record (with HAS_STAKING forced) and
// its staking pool as one indivisible unit of work. Both records exist
// afterward or neither does; a flagged-but-unpooled agent is never
// observable.
type CreateAgentWithPool struct{}

func (CreateAgentWithPool) Type() protocol.OperationType {
	return protocol.OperationTypeCreateAgentWithPool
}

func (CreateAgentWithPool) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.CreateAgentWithPool)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CreateAgentWithPool), env.Body)
	}

	agent, agentAddr, err := createAgentRecord(st, body.Creator, body.CardURI, body.CardHash, true, body.Memory)
	if err != nil {
		return nil, err
	}

	pool, _, err := createStakingPool(st, agentAddr, body.TokenMint, body.MinStakeAmount)
	if err != nil {
		return nil, err
	}

	return &protocol.AgentCreatedWithPool{
		AgentCreated: protocol.AgentCreated{Creator: agent.Creator, Owner: agent.Owner, Agent: agentAddr},
		PoolCreated:  protocol.PoolCreated{Agent: pool.Agent, Owner: pool.Owner, MinStakeAmount: pool.MinStakeAmount},
	}, nil
}
