// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package token implements the value-transfer boundary. The staking
// executors treat it as an opaque service that moves exact amounts and fails
// atomically with the enclosing batch.
package token

import (
	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// Ledger moves token value between accounts. All mutations happen within the
// caller's batch, so a transfer commits or fails in lockstep with the
// operation that requested it.
type Ledger interface {
	// CreateAccount creates an empty token account. Fails if the address is
	// taken.
	CreateAccount(batch *database.Batch, addr, owner, mint address.Address) error

	// Balance returns an account's balance. A missing account has balance
	// zero.
	Balance(batch *database.Batch, addr address.Address) (uint64, error)

	// Mint adds value to an account, creating it if absent.
	Mint(batch *database.Batch, mint, addr, owner address.Address, amount uint64) error

	// Transfer moves value between accounts. The destination is created on
	// demand with the source's mint.
	Transfer(batch *database.Batch, from, to address.Address, amount uint64) error
}

// ledger is the record-backed Ledger.
type ledger struct{}

// NewLedger returns the record-backed token ledger.
func NewLedger() Ledger { return ledger{} }

func (ledger) CreateAccount(batch *database.Batch, addr, owner, mint address.Address) error {
	exists, err := batch.AccountExists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.Conflict.WithFormat("token account %v already exists", addr)
	}
	return batch.PutAccount(addr, &protocol.TokenAccount{Owner: owner, Mint: mint})
}

func (ledger) Balance(batch *database.Batch, addr address.Address) (uint64, error) {
	account, err := batch.TokenAccount(addr)
	switch {
	case err == nil:
		return account.Balance, nil
	case errors.Is(err, errors.NotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func (ledger) Mint(batch *database.Batch, mint, addr, owner address.Address, amount uint64) error {
	account, err := loadOrCreate(batch, addr, owner, mint)
	if err != nil {
		return err
	}
	if account.Mint != mint {
		return errors.InvalidMint.WithFormat("account %v holds a different token", addr)
	}
	account.Balance += amount
	return batch.PutAccount(addr, account)
}

func (ledger) Transfer(batch *database.Batch, from, to address.Address, amount uint64) error {
	src, err := batch.TokenAccount(from)
	if err != nil {
		return errors.UnknownError.WithFormat("load source: %w", err)
	}
	if src.Balance < amount {
		return errors.InsufficientFunds.WithFormat("balance %d is less than %d", src.Balance, amount)
	}

	dst, err := loadOrCreate(batch, to, to, src.Mint)
	if err != nil {
		return err
	}
	if dst.Mint != src.Mint {
		return errors.InvalidMint.WithFormat("account %v holds a different token", to)
	}

	src.Balance -= amount
	dst.Balance += amount
	err = batch.PutAccount(from, src)
	if err != nil {
		return err
	}
	return batch.PutAccount(to, dst)
}

func loadOrCreate(batch *database.Batch, addr, owner, mint address.Address) (*protocol.TokenAccount, error) {
	account, err := batch.TokenAccount(addr)
	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, errors.NotFound):
		return &protocol.TokenAccount{Owner: owner, Mint: mint}, nil
	default:
		return nil, err
	}
}
