// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// Withdrawal fee rates are expressed in basis points of the withdrawn amount.
const (
	// RateDenominator is the fixed-point denominator for fee rates.
	RateDenominator = 10_000

	// DefaultFeeImmediate is the fee rate for an immediate withdrawal, 5%.
	DefaultFeeImmediate uint64 = 500

	// DefaultFeeRegular is the steady-state fee rate, 0.5%.
	DefaultFeeRegular uint64 = 50

	// DefaultFeeMax is the hard ceiling on the fee rate, 10%.
	DefaultFeeMax uint64 = 1_000

	// DefaultDecayDuration is the decay window in seconds, 24 hours.
	DefaultDecayDuration uint32 = 86_400
)

// NewProgramState returns a program state with the default fee schedule.
func NewProgramState(treasury address.Address) *ProgramState {
	return &ProgramState{
		FeeImmediate:  DefaultFeeImmediate,
		FeeRegular:    DefaultFeeRegular,
		FeeMax:        DefaultFeeMax,
		DecayDuration: DefaultDecayDuration,
		Treasury:      treasury,
	}
}

// WithdrawalFeeRate computes the fee rate for a withdrawal after the given
// elapsed time. The rate decays linearly from FeeImmediate to FeeRegular over
// DecayDuration, clamped to FeeMax.
func (p *ProgramState) WithdrawalFeeRate(elapsedSecs uint64) (uint64, error) {
	if p.DecayDuration == 0 {
		return 0, errors.InvalidFeeConfig.With("decay duration is zero")
	}

	duration := uint64(p.DecayDuration)
	if elapsedSecs >= duration {
		return min64(p.FeeRegular, p.FeeMax), nil
	}

	var diff uint64
	if p.FeeImmediate > p.FeeRegular {
		diff = p.FeeImmediate - p.FeeRegular
	}
	rate := p.FeeImmediate - diff*elapsedSecs/duration
	return min64(rate, p.FeeMax), nil
}

// WithdrawalFee computes the fee for withdrawing the given amount. Rounding
// is always floor: fractional remainders favor the staker, never the
// treasury.
func (p *ProgramState) WithdrawalFee(amount, elapsedSecs uint64) (uint64, error) {
	rate, err := p.WithdrawalFeeRate(elapsedSecs)
	if err != nil {
		return 0, err
	}

	// floor(amount*rate/denom) without overflowing uint64: amount = q*D + r,
	// so the fee is q*rate + floor(r*rate/D)
	q, r := amount/RateDenominator, amount%RateDenominator
	return q*rate + r*rate/RateDenominator, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
