// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

func TestWithdrawalFeeRate(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})

	cases := map[string]struct {
		elapsed uint64
		rate    uint64
	}{
		"Immediate":   {0, DefaultFeeImmediate},
		"Quarter":     {21_600, 500 - 450*21_600/86_400},
		"Half":        {43_200, 500 - 450*43_200/86_400},
		"AlmostDone":  {86_399, 500 - 450*86_399/86_400},
		"Done":        {86_400, DefaultFeeRegular},
		"LongAfter":   {1 << 40, DefaultFeeRegular},
		"OneSecondIn": {1, 500 - 450*1/86_400},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rate, err := p.WithdrawalFeeRate(c.elapsed)
			require.NoError(t, err)
			require.Equal(t, c.rate, rate)
		})
	}
}

func TestWithdrawalFeeRateMonotonic(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})

	prev := uint64(1 << 62)
	for elapsed := uint64(0); elapsed <= uint64(p.DecayDuration)+100; elapsed += 97 {
		rate, err := p.WithdrawalFeeRate(elapsed)
		require.NoError(t, err)
		require.LessOrEqual(t, rate, prev, "rate must not increase with elapsed time (elapsed=%d)", elapsed)
		prev = rate
	}
}

func TestWithdrawalFeeRateClamp(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})
	p.FeeImmediate = 2_500
	p.FeeMax = 1_000

	rate, err := p.WithdrawalFeeRate(0)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), rate)

	// The clamp also binds the steady-state rate
	p.FeeRegular = 1_200
	rate, err = p.WithdrawalFeeRate(uint64(p.DecayDuration))
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), rate)
}

func TestWithdrawalFeeRateZeroDecay(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})
	p.DecayDuration = 0

	_, err := p.WithdrawalFeeRate(0)
	require.ErrorIs(t, err, errors.InvalidFeeConfig)
	_, err = p.WithdrawalFee(5000, 0)
	require.ErrorIs(t, err, errors.InvalidFeeConfig)
}

func TestWithdrawalFee(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})

	cases := map[string]struct {
		amount  uint64
		elapsed uint64
		fee     uint64
	}{
		"ImmediateExact": {5_000, 0, 250},              // 5000 * 500 / 10000
		"RegularExact":   {5_000, 86_400, 25},          // 5000 * 50 / 10000
		"FloorRounding":  {199, 0, 9},                  // 199 * 500 / 10000 = 9.95
		"SubUnit":        {19, 0, 0},                   // 19 * 500 / 10000 = 0.95
		"HalfDecay":      {5_000, 43_200, 137},         // rate 275
		"ZeroAmount":     {0, 0, 0},
		"Huge":           {1 << 60, 0, (1 << 60) / 20}, // 5% of 2^60, exact
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			fee, err := p.WithdrawalFee(c.amount, c.elapsed)
			require.NoError(t, err)
			require.Equal(t, c.fee, fee)
		})
	}
}

func TestWithdrawalFeeNeverExceedsAmount(t *testing.T) {
	p := NewProgramState(address.Address{0xAA})
	for _, amount := range []uint64{0, 1, 19, 199, 10_000, 1 << 40, 1<<64 - 1} {
		fee, err := p.WithdrawalFee(amount, 0)
		require.NoError(t, err)
		require.LessOrEqual(t, fee, amount)
	}
}
