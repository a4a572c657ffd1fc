// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
)

// OperationBody is the payload of a ledger operation.
type OperationBody interface {
	Type() OperationType
}

// Envelope is a signed operation as accepted by the environment. Signature
// verification happens upstream; by the time an envelope reaches the
// executor, Signer is authenticated.
type Envelope struct {
	Signer address.Address
	Body   OperationBody
}

// MemoryFields is the optional memory payload of a create operation.
type MemoryFields struct {
	Mode MemoryMode
	Ptr  []byte
	Hash [32]byte
}

// CreateAgent creates an agent record at the address derived from the
// creator identity. Fails if a record already exists there.
type CreateAgent struct {
	Creator    address.Address
	CardURI    string
	CardHash   [32]byte
	HasStaking bool
	Memory     *MemoryFields
}

func (*CreateAgent) Type() OperationType { return OperationTypeCreateAgent }

// SetCard replaces the agent's card URI and hash. Owner only.
type SetCard struct {
	Agent    address.Address
	CardURI  string
	CardHash [32]byte
}

func (*SetCard) Type() OperationType { return OperationTypeSetCard }

// SetMemory replaces the agent's memory fields. Owner only; fails while the
// memory is locked.
type SetMemory struct {
	Agent address.Address
	Mode  MemoryMode
	Ptr   []byte
	Hash  [32]byte
}

func (*SetMemory) Type() OperationType { return OperationTypeSetMemory }

// LockMemory sets the LOCKED flag. Irreversible.
type LockMemory struct {
	Agent address.Address
}

func (*LockMemory) Type() OperationType { return OperationTypeLockMemory }

// SetActive toggles the ACTIVE flag.
type SetActive struct {
	Agent  address.Address
	Active bool
}

func (*SetActive) Type() OperationType { return OperationTypeSetActive }

// TransferOwner replaces the agent's owner. Takes effect immediately.
type TransferOwner struct {
	Agent    address.Address
	NewOwner address.Address
}

func (*TransferOwner) Type() OperationType { return OperationTypeTransferOwner }

// CloseAgent destroys the agent record, returning its backing value to the
// recipient. Fails while ACTIVE or HAS_STAKING is set.
type CloseAgent struct {
	Agent     address.Address
	Recipient address.Address
}

func (*CloseAgent) Type() OperationType { return OperationTypeCloseAgent }

// InitProgramState creates the configuration singleton. Callable once.
type InitProgramState struct {
	Treasury address.Address
}

func (*InitProgramState) Type() OperationType { return OperationTypeInitProgramState }

// CreateStakingPool creates the pool and vault for a staking-enabled agent.
type CreateStakingPool struct {
	Agent          address.Address
	TokenMint      address.Address
	MinStakeAmount uint64
}

func (*CreateStakingPool) Type() OperationType { return OperationTypeCreateStakingPool }

// UpdateMinStake replaces the pool's minimum-stake floor. Pool owner only;
// does not affect existing positions.
type UpdateMinStake struct {
	Agent          address.Address
	MinStakeAmount uint64
}

func (*UpdateMinStake) Type() OperationType { return OperationTypeUpdateMinStake }

// InitStake creates a zeroed stake record for the (signer, agent) pair.
type InitStake struct {
	Agent address.Address
}

func (*InitStake) Type() OperationType { return OperationTypeInitStake }

// Stake moves value from the signer's token account into the vault.
type Stake struct {
	Agent  address.Address
	Source address.Address
	Amount uint64
}

func (*Stake) Type() OperationType { return OperationTypeStake }

// WithdrawStake returns the signer's full position minus the decayed fee.
type WithdrawStake struct {
	Agent       address.Address
	Destination address.Address
}

func (*WithdrawStake) Type() OperationType { return OperationTypeWithdrawStake }

// CreateAgentWithPool creates an agent record (with HAS_STAKING forced) and
// its staking pool as one indivisible unit of work.
type CreateAgentWithPool struct {
	Creator        address.Address
	CardURI        string
	CardHash       [32]byte
	Memory         *MemoryFields
	TokenMint      address.Address
	MinStakeAmount uint64
}

func (*CreateAgentWithPool) Type() OperationType { return OperationTypeCreateAgentWithPool }
