// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
)

// Event is the typed result of a successfully applied operation.
type Event interface {
	EventType() string
}

type AgentCreated struct {
	Creator address.Address
	Owner   address.Address
	Agent   address.Address
}

func (*AgentCreated) EventType() string { return "agentCreated" }

type CardSet struct {
	Creator  address.Address
	CardURI  string
	CardHash [32]byte
}

func (*CardSet) EventType() string { return "cardSet" }

type MemoryUpdated struct {
	Creator    address.Address
	Mode       MemoryMode
	PtrPreview string
	Hash       [32]byte
}

func (*MemoryUpdated) EventType() string { return "memoryUpdated" }

type MemoryLocked struct {
	Creator address.Address
}

func (*MemoryLocked) EventType() string { return "memoryLocked" }

type AgentActiveSet struct {
	Creator address.Address
	Active  bool
}

func (*AgentActiveSet) EventType() string { return "agentActiveSet" }

type AgentClosed struct {
	Creator   address.Address
	Recipient address.Address
}

func (*AgentClosed) EventType() string { return "agentClosed" }

type OwnerTransferred struct {
	Creator  address.Address
	OldOwner address.Address
	NewOwner address.Address
}

func (*OwnerTransferred) EventType() string { return "ownerTransferred" }

type ProgramStateInitialized struct {
	Treasury address.Address
}

func (*ProgramStateInitialized) EventType() string { return "programStateInitialized" }

type PoolCreated struct {
	Agent          address.Address
	Owner          address.Address
	MinStakeAmount uint64
}

func (*PoolCreated) EventType() string { return "poolCreated" }

type MinStakeUpdated struct {
	Agent     address.Address
	OldAmount uint64
	NewAmount uint64
}

func (*MinStakeUpdated) EventType() string { return "minStakeUpdated" }

type StakeInitialized struct {
	Staker address.Address
	Agent  address.Address
}

func (*StakeInitialized) EventType() string { return "stakeInitialized" }

type Staked struct {
	Staker address.Address
	Agent  address.Address
	Amount uint64
	Total  uint64
}

func (*Staked) EventType() string { return "staked" }

type Withdrawn struct {
	Staker address.Address
	Agent  address.Address
	Amount uint64
	Fee    uint64
}

func (*Withdrawn) EventType() string { return "withdrawn" }

type AgentCreatedWithPool struct {
	AgentCreated
	PoolCreated
}

func (*AgentCreatedWithPool) EventType() string { return "agentCreatedWithPool" }
