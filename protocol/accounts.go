// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
)

// Account is a fixed-layout durable record.
type Account interface {
	Type() AccountType
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// AgentRecord is the authoritative record for one agent identity. The creator
// is part of the derived address and never changes; the owner controls all
// mutating operations.
type AgentRecord struct {
	Version      uint8
	Creator      address.Address
	Owner        address.Address
	MemoryMode   MemoryMode
	MemoryPtrLen uint8
	MemoryPtr    [MaxMemoryPtrLen]byte
	MemoryHash   [32]byte
	CardURILen   uint8
	CardURI      [MaxURILen]byte
	CardHash     [32]byte
	Flags        AgentFlags
	Bump         uint8
}

func (a *AgentRecord) Type() AccountType { return AccountTypeAgentRecord }

// Active returns true if the ACTIVE flag is set.
func (a *AgentRecord) Active() bool { return a.Flags.Has(FlagActive) }

// Locked returns true if the LOCKED flag is set.
func (a *AgentRecord) Locked() bool { return a.Flags.Has(FlagLocked) }

// HasStaking returns true if the HAS_STAKING flag is set.
func (a *AgentRecord) HasStaking() bool { return a.Flags.Has(FlagHasStaking) }

// GetCardURI returns the card URI truncated at the stored length.
func (a *AgentRecord) GetCardURI() string { return string(a.CardURI[:a.CardURILen]) }

// GetMemoryPtr returns the memory pointer truncated at the stored length.
func (a *AgentRecord) GetMemoryPtr() []byte { return a.MemoryPtr[:a.MemoryPtrLen] }

// SetCardURI stores the URI in the fixed buffer, zero-filling the unused
// tail. The caller must have validated the length.
func (a *AgentRecord) SetCardURI(uri string) {
	writeFixed(a.CardURI[:], []byte(uri))
	a.CardURILen = uint8(len(uri))
}

// SetMemoryPtr stores the pointer in the fixed buffer, zero-filling the
// unused tail. The caller must have validated the length.
func (a *AgentRecord) SetMemoryPtr(ptr []byte) {
	writeFixed(a.MemoryPtr[:], ptr)
	a.MemoryPtrLen = uint8(len(ptr))
}

// ClearMemory resets the memory fields to mode None, zero-filling the pointer
// buffer so no stale bytes leak.
func (a *AgentRecord) ClearMemory() {
	a.MemoryMode = MemoryModeNone
	a.MemoryPtr = [MaxMemoryPtrLen]byte{}
	a.MemoryPtrLen = 0
	a.MemoryHash = [32]byte{}
}

// ProgramState is the global configuration singleton. It is immutable after
// initialization; fee-schedule changes require a new deployment.
type ProgramState struct {
	FeeImmediate  uint64
	FeeRegular    uint64
	FeeMax        uint64
	DecayDuration uint32
	Treasury      address.Address
	Bump          uint8
}

func (p *ProgramState) Type() AccountType { return AccountTypeProgramState }

// StakingPool holds the staking policy for one agent record. At most one pool
// exists per agent, enforced by address derivation.
type StakingPool struct {
	Agent          address.Address
	Owner          address.Address
	TokenMint      address.Address
	TokenVault     address.Address
	MinStakeAmount uint64
	TotalStaked    uint64
	StakerCount    uint32
	CreatedAt      int64
	Flags          uint8
	Bump           uint8
}

func (p *StakingPool) Type() AccountType { return AccountTypeStakingPool }

// StakeRecord tracks one staker's position in one agent's pool. StakedAt is
// set only when the position transitions from zero to non-zero and is
// preserved across withdrawals, so the fee clock cannot be reset.
type StakeRecord struct {
	Staker        address.Address
	Agent         address.Address
	StakedAmount  uint64
	StakedAt      int64
	LastUpdatedAt int64
	Bump          uint8
}

func (s *StakeRecord) Type() AccountType { return AccountTypeStakeRecord }

// TokenAccount is a balance record of the value-transfer service. The vault
// and treasury are token accounts; so is every staker's funding account.
type TokenAccount struct {
	Owner   address.Address
	Mint    address.Address
	Balance uint64
}

func (t *TokenAccount) Type() AccountType { return AccountTypeTokenAccount }

// writeFixed copies src into dst and zero-fills the unused tail. Exposing
// stale bytes past the stored length is an invariant violation.
func writeFixed(dst, src []byte) {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
