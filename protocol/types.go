// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// SchemaVersion is the current agent record schema version.
const SchemaVersion = 1

// Field capacity limits.
const (
	// MaxURILen is the capacity of the card URI buffer.
	MaxURILen = 96

	// MaxMemoryPtrLen is the capacity of the memory pointer buffer.
	MaxMemoryPtrLen = 96
)

// AccountType is the type of a stored record.
type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeAgentRecord
	AccountTypeProgramState
	AccountTypeStakingPool
	AccountTypeStakeRecord
	AccountTypeTokenAccount
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeAgentRecord:
		return "agentRecord"
	case AccountTypeProgramState:
		return "programState"
	case AccountTypeStakingPool:
		return "stakingPool"
	case AccountTypeStakeRecord:
		return "stakeRecord"
	case AccountTypeTokenAccount:
		return "tokenAccount"
	default:
		return "unknown"
	}
}

// OperationType is the type of a ledger operation.
type OperationType uint64

const (
	OperationTypeUnknown OperationType = iota
	OperationTypeCreateAgent
	OperationTypeSetCard
	OperationTypeSetMemory
	OperationTypeLockMemory
	OperationTypeSetActive
	OperationTypeTransferOwner
	OperationTypeCloseAgent
	OperationTypeInitProgramState
	OperationTypeCreateStakingPool
	OperationTypeUpdateMinStake
	OperationTypeInitStake
	OperationTypeStake
	OperationTypeWithdrawStake
	OperationTypeCreateAgentWithPool
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeCreateAgent:
		return "createAgent"
	case OperationTypeSetCard:
		return "setCard"
	case OperationTypeSetMemory:
		return "setMemory"
	case OperationTypeLockMemory:
		return "lockMemory"
	case OperationTypeSetActive:
		return "setActive"
	case OperationTypeTransferOwner:
		return "transferOwner"
	case OperationTypeCloseAgent:
		return "closeAgent"
	case OperationTypeInitProgramState:
		return "initProgramState"
	case OperationTypeCreateStakingPool:
		return "createStakingPool"
	case OperationTypeUpdateMinStake:
		return "updateMinStake"
	case OperationTypeInitStake:
		return "initStake"
	case OperationTypeStake:
		return "stake"
	case OperationTypeWithdrawStake:
		return "withdrawStake"
	case OperationTypeCreateAgentWithPool:
		return "createAgentWithPool"
	default:
		return "unknown"
	}
}

// MemoryMode declares how an agent record's memory pointer is interpreted.
type MemoryMode uint8

const (
	MemoryModeNone MemoryMode = iota
	MemoryModeCid
	MemoryModeIpns
	MemoryModeUrl
	MemoryModeManifest
)

// IsValid returns true for a known memory mode.
func (m MemoryMode) IsValid() bool { return m <= MemoryModeManifest }

func (m MemoryMode) String() string {
	switch m {
	case MemoryModeNone:
		return "none"
	case MemoryModeCid:
		return "cid"
	case MemoryModeIpns:
		return "ipns"
	case MemoryModeUrl:
		return "url"
	case MemoryModeManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// AgentFlags is the agent record's flag bitset.
type AgentFlags uint32

const (
	// FlagActive marks the record as active. An active record cannot be
	// closed.
	FlagActive AgentFlags = 1 << 0

	// FlagLocked marks the record's memory as locked. Once set it is never
	// cleared.
	FlagLocked AgentFlags = 1 << 1

	// FlagHasStaking marks the record as staking-enabled. A record with this
	// flag set cannot be closed.
	FlagHasStaking AgentFlags = 1 << 2
)

// Has returns true if all the given bits are set.
func (f AgentFlags) Has(bits AgentFlags) bool { return f&bits == bits }

// Set returns the flags with the given bits set.
func (f AgentFlags) Set(bits AgentFlags) AgentFlags { return f | bits }

// Clear returns the flags with the given bits cleared.
func (f AgentFlags) Clear(bits AgentFlags) AgentFlags { return f &^ bits }

// PoolFlagInitialized marks a staking pool as initialized.
const PoolFlagInitialized uint8 = 1
