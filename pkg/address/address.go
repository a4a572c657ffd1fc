// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package address implements deterministic record addressing. Every record's
// storage address is derived from a namespace tag plus stable seed material,
// so any party can locate a record without an index.
package address

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// Address is a 32-byte record address or external identity. Identities are
// opaque to this package beyond equality comparison.
type Address [32]byte

// Zero is the zero address, used as an "unset" sentinel.
var Zero Address

// Namespace tags for derived addresses.
const (
	SeedAgent        = "agent"
	SeedStakingPool  = "staking_pool"
	SeedTokenVault   = "token_vault"
	SeedStakeAccount = "stake_account"
	SeedProgramState = "program_state"
)

// reservedPrefix marks the address space reserved for system use. A
// derivation that lands in the reserved space is not well-formed and the
// bump is incremented past it.
const reservedPrefix = 0xFF

// Derive derives an address from a namespace tag and seed material, returning
// the address and the smallest bump that makes the derivation well-formed.
// The same inputs always yield the same outputs.
func Derive(namespace string, seeds ...[]byte) (Address, uint8) {
	for bump := 0; bump < 256; bump++ {
		addr := deriveWithBump(namespace, seeds, uint8(bump))
		if addr[0] != reservedPrefix {
			return addr, uint8(bump)
		}
	}
	// 256 consecutive reserved digests is not going to happen
	panic("address derivation failed")
}

// DeriveWithBump recomputes a derivation for a persisted bump. It returns an
// error if the bump does not produce a well-formed address.
func DeriveWithBump(namespace string, bump uint8, seeds ...[]byte) (Address, error) {
	addr := deriveWithBump(namespace, seeds, bump)
	if addr[0] == reservedPrefix {
		return Zero, errors.InternalError.WithFormat("bump %d yields a reserved address for %q", bump, namespace)
	}
	return addr, nil
}

func deriveWithBump(namespace string, seeds [][]byte, bump uint8) Address {
	h := sha256.New()

	// Length-prefix each component so distinct seed tuples can never collide
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(namespace)))
	h.Write(n[:])
	h.Write([]byte(namespace))
	for _, seed := range seeds {
		binary.BigEndian.PutUint32(n[:], uint32(len(seed)))
		h.Write(n[:])
		h.Write(seed)
	}
	h.Write([]byte{bump})

	var addr Address
	h.Sum(addr[:0])
	return addr
}

// ForAgent derives the agent record address for a creator identity.
func ForAgent(creator Address) (Address, uint8) {
	return Derive(SeedAgent, creator[:])
}

// ForStakingPool derives the pool address for an agent record address.
func ForStakingPool(agent Address) (Address, uint8) {
	return Derive(SeedStakingPool, agent[:])
}

// ForTokenVault derives the vault address for a pool address.
func ForTokenVault(pool Address) (Address, uint8) {
	return Derive(SeedTokenVault, pool[:])
}

// ForStakeAccount derives the stake record address for a (staker, agent) pair.
func ForStakeAccount(staker, agent Address) (Address, uint8) {
	return Derive(SeedStakeAccount, staker[:], agent[:])
}

// ForProgramState derives the configuration singleton's address.
func ForProgramState() (Address, uint8) {
	return Derive(SeedProgramState)
}

// IsZero returns true if the address is the zero sentinel.
func (a Address) IsZero() bool { return a == Zero }

// Equal returns true if the addresses are byte-identical.
func (a Address) Equal(b Address) bool { return a == b }

// Compare compares two addresses lexicographically.
func (a Address) Compare(b Address) int { return bytes.Compare(a[:], b[:]) }

// Bytes returns the address as a slice.
func (a Address) Bytes() []byte { return a[:] }

func (a Address) String() string { return hex.EncodeToString(a[:]) }

// Parse parses a hex-encoded address.
func Parse(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, errors.EncodingError.WithFormat("parse address: %w", err)
	}
	if len(b) != 32 {
		return Zero, errors.EncodingError.WithFormat("parse address: want 32 bytes, got %d", len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// FromBytes converts a 32-byte slice to an address.
func FromBytes(b []byte) (Address, error) {
	if len(b) != 32 {
		return Zero, errors.EncodingError.WithFormat("address: want 32 bytes, got %d", len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}
