// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/binary"

	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// Record sizes, including the one-byte type tag. Field order and widths are
// fixed for binary compatibility with stored records.
const (
	AgentRecordSize  = 1 + 1 + 32 + 32 + 1 + 1 + MaxMemoryPtrLen + 32 + 1 + MaxURILen + 32 + 4 + 1
	ProgramStateSize = 1 + 8 + 8 + 8 + 4 + 32 + 1
	StakingPoolSize  = 1 + 32 + 32 + 32 + 32 + 8 + 8 + 4 + 8 + 1 + 1
	StakeRecordSize  = 1 + 32 + 32 + 8 + 8 + 8 + 1
	TokenAccountSize = 1 + 32 + 32 + 8
)

// UnmarshalAccount decodes a stored record according to its type tag.
func UnmarshalAccount(data []byte) (Account, error) {
	if len(data) == 0 {
		return nil, errors.EncodingError.With("empty record")
	}
	var account Account
	switch AccountType(data[0]) {
	case AccountTypeAgentRecord:
		account = new(AgentRecord)
	case AccountTypeProgramState:
		account = new(ProgramState)
	case AccountTypeStakingPool:
		account = new(StakingPool)
	case AccountTypeStakeRecord:
		account = new(StakeRecord)
	case AccountTypeTokenAccount:
		account = new(TokenAccount)
	default:
		return nil, errors.EncodingError.WithFormat("unknown account type %d", data[0])
	}
	err := account.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return account, nil
}

type writer struct {
	buf []byte
	off int
}

func newWriter(size int) *writer { return &writer{buf: make([]byte, size)} }

func (w *writer) u8(v uint8) {
	w.buf[w.off] = v
	w.off++
}

func (w *writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *writer) u64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}

func (w *writer) i64(v int64) { w.u64(uint64(v)) }

func (w *writer) bytes(b []byte) {
	copy(w.buf[w.off:], b)
	w.off += len(b)
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *reader) i64() int64 { return int64(r.u64()) }

func (r *reader) bytes(n int) []byte {
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v
}

func (r *reader) addr() address.Address {
	var a address.Address
	copy(a[:], r.bytes(32))
	return a
}

func checkRecord(data []byte, typ AccountType, size int) error {
	if len(data) != size {
		return errors.EncodingError.WithFormat("%v: want %d bytes, got %d", typ, size, len(data))
	}
	if AccountType(data[0]) != typ {
		return errors.EncodingError.WithFormat("want %v, got account type %d", typ, data[0])
	}
	return nil
}

func (a *AgentRecord) MarshalBinary() ([]byte, error) {
	w := newWriter(AgentRecordSize)
	w.u8(uint8(AccountTypeAgentRecord))
	w.u8(a.Version)
	w.bytes(a.Creator[:])
	w.bytes(a.Owner[:])
	w.u8(uint8(a.MemoryMode))
	w.u8(a.MemoryPtrLen)
	w.bytes(a.MemoryPtr[:])
	w.bytes(a.MemoryHash[:])
	w.u8(a.CardURILen)
	w.bytes(a.CardURI[:])
	w.bytes(a.CardHash[:])
	w.u32(uint32(a.Flags))
	w.u8(a.Bump)
	return w.buf, nil
}

func (a *AgentRecord) UnmarshalBinary(data []byte) error {
	err := checkRecord(data, AccountTypeAgentRecord, AgentRecordSize)
	if err != nil {
		return err
	}
	r := &reader{buf: data, off: 1}
	a.Version = r.u8()
	a.Creator = r.addr()
	a.Owner = r.addr()
	a.MemoryMode = MemoryMode(r.u8())
	a.MemoryPtrLen = r.u8()
	copy(a.MemoryPtr[:], r.bytes(MaxMemoryPtrLen))
	copy(a.MemoryHash[:], r.bytes(32))
	a.CardURILen = r.u8()
	copy(a.CardURI[:], r.bytes(MaxURILen))
	copy(a.CardHash[:], r.bytes(32))
	a.Flags = AgentFlags(r.u32())
	a.Bump = r.u8()
	return nil
}

func (p *ProgramState) MarshalBinary() ([]byte, error) {
	w := newWriter(ProgramStateSize)
	w.u8(uint8(AccountTypeProgramState))
	w.u64(p.FeeImmediate)
	w.u64(p.FeeRegular)
	w.u64(p.FeeMax)
	w.u32(p.DecayDuration)
	w.bytes(p.Treasury[:])
	w.u8(p.Bump)
	return w.buf, nil
}

func (p *ProgramState) UnmarshalBinary(data []byte) error {
	err := checkRecord(data, AccountTypeProgramState, ProgramStateSize)
	if err != nil {
		return err
	}
	r := &reader{buf: data, off: 1}
	p.FeeImmediate = r.u64()
	p.FeeRegular = r.u64()
	p.FeeMax = r.u64()
	p.DecayDuration = r.u32()
	p.Treasury = r.addr()
	p.Bump = r.u8()
	return nil
}

func (p *StakingPool) MarshalBinary() ([]byte, error) {
	w := newWriter(StakingPoolSize)
	w.u8(uint8(AccountTypeStakingPool))
	w.bytes(p.Agent[:])
	w.bytes(p.Owner[:])
	w.bytes(p.TokenMint[:])
	w.bytes(p.TokenVault[:])
	w.u64(p.MinStakeAmount)
	w.u64(p.TotalStaked)
	w.u32(p.StakerCount)
	w.i64(p.CreatedAt)
	w.u8(p.Flags)
	w.u8(p.Bump)
	return w.buf, nil
}

func (p *StakingPool) UnmarshalBinary(data []byte) error {
	err := checkRecord(data, AccountTypeStakingPool, StakingPoolSize)
	if err != nil {
		return err
	}
	r := &reader{buf: data, off: 1}
	p.Agent = r.addr()
	p.Owner = r.addr()
	p.TokenMint = r.addr()
	p.TokenVault = r.addr()
	p.MinStakeAmount = r.u64()
	p.TotalStaked = r.u64()
	p.StakerCount = r.u32()
	p.CreatedAt = r.i64()
	p.Flags = r.u8()
	p.Bump = r.u8()
	return nil
}

func (s *StakeRecord) MarshalBinary() ([]byte, error) {
	w := newWriter(StakeRecordSize)
	w.u8(uint8(AccountTypeStakeRecord))
	w.bytes(s.Staker[:])
	w.bytes(s.Agent[:])
	w.u64(s.StakedAmount)
	w.i64(s.StakedAt)
	w.i64(s.LastUpdatedAt)
	w.u8(s.Bump)
	return w.buf, nil
}

func (s *StakeRecord) UnmarshalBinary(data []byte) error {
	err := checkRecord(data, AccountTypeStakeRecord, StakeRecordSize)
	if err != nil {
		return err
	}
	r := &reader{buf: data, off: 1}
	s.Staker = r.addr()
	s.Agent = r.addr()
	s.StakedAmount = r.u64()
	s.StakedAt = r.i64()
	s.LastUpdatedAt = r.i64()
	s.Bump = r.u8()
	return nil
}

func (t *TokenAccount) MarshalBinary() ([]byte, error) {
	w := newWriter(TokenAccountSize)
	w.u8(uint8(AccountTypeTokenAccount))
	w.bytes(t.Owner[:])
	w.bytes(t.Mint[:])
	w.u64(t.Balance)
	return w.buf, nil
}

func (t *TokenAccount) UnmarshalBinary(data []byte) error {
	err := checkRecord(data, AccountTypeTokenAccount, TokenAccountSize)
	if err != nil {
		return err
	}
	r := &reader{buf: data, off: 1}
	t.Owner = r.addr()
	t.Mint = r.addr()
	t.Balance = r.u64()
	return nil
}
