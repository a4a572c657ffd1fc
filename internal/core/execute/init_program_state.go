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

// InitProgramState creates the configuration singleton with the default fee
// schedule. Callable once; there is no update path.
type InitProgramState struct{}

func (InitProgramState) Type() protocol.OperationType { return protocol.OperationTypeInitProgramState }

func (InitProgramState) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.InitProgramState)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.InitProgramState), env.Body)
	}

	addr, bump := address.ForProgramState()

	state := protocol.NewProgramState(body.Treasury)
	state.Bump = bump

	err := st.Create(addr, state)
	if err != nil {
		return nil, err
	}

	return &protocol.ProgramStateInitialized{Treasury: body.Treasury}, nil
}
