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

// SetCard replaces an agent's card URI and hash. The hash is stored
// verbatim; the referenced document is never verified.
type SetCard struct{}

func (SetCard) Type() protocol.OperationType { return protocol.OperationTypeSetCard }

func (SetCard) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.SetCard)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.SetCard), env.Body)
	}

	err := protocol.ValidateCardURI(body.CardURI)
	if err != nil {
		return nil, err
	}

	agent, err := st.LoadAgentForUpdate(body.Agent)
	if err != nil {
		return nil, err
	}

	agent.SetCardURI(body.CardURI)
	agent.CardHash = body.CardHash

	err = st.Update(body.Agent, agent)
	if err != nil {
		return nil, err
	}

	return &protocol.CardSet{
		Creator:  agent.Creator,
		CardURI:  protocol.PreviewString([]byte(body.CardURI)),
		CardHash: body.CardHash,
	}, nil
}
