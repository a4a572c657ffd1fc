// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

// Status is a request status code. Codes in the 4xx range are caller errors
// and are stable: client tooling branches on them.
type Status uint64

const (
	// OK means the request succeeded.
	OK Status = 200

	// NotAuthorized means the signer is not allowed to execute the operation.
	NotAuthorized Status = 403

	// NotFound means a referenced record does not exist.
	NotFound Status = 404

	// Conflict means a record already exists at the derived address.
	Conflict Status = 409

	// InvalidLength means a field is empty or exceeds its fixed capacity.
	InvalidLength Status = 440

	// InsecureScheme means a URI does not use an allowed scheme.
	InsecureScheme Status = 441

	// InvalidMemoryFields means memory fields are inconsistent with the
	// declared memory mode.
	InvalidMemoryFields Status = 442

	// InvalidOwner means the new owner identity is invalid.
	InvalidOwner Status = 443

	// MemoryLocked means the record's memory is locked against mutation.
	MemoryLocked Status = 450

	// AgentActive means the record cannot be closed while active.
	AgentActive Status = 451

	// StakingEnabled means the record cannot be closed while staking is
	// attached.
	StakingEnabled Status = 452

	// StakingNotEnabled means the agent record does not allow staking.
	StakingNotEnabled Status = 453

	// InvalidAmount means a zero or otherwise unusable amount.
	InvalidAmount Status = 460

	// BelowMinimumStake means a fresh stake is below the pool's floor.
	BelowMinimumStake Status = 461

	// NoStake means there is nothing to withdraw.
	NoStake Status = 462

	// InvalidMinStake means a zero minimum-stake configuration.
	InvalidMinStake Status = 463

	// InsufficientFunds means the payer's balance cannot cover a transfer.
	InsufficientFunds Status = 464

	// InvalidFeeConfig means the fee schedule is unusable.
	InvalidFeeConfig Status = 465

	// InvalidMint means a token account's mint does not match the transfer.
	InvalidMint Status = 466

	// InternalError means something has gone seriously wrong.
	InternalError Status = 500

	// EncodingError means a record failed to marshal or unmarshal.
	EncodingError Status = 501

	// UnknownError is used to wrap errors of unknown provenance.
	UnknownError Status = 502
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsClientError returns true if the status is a caller error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case NotAuthorized:
		return "not authorized"
	case NotFound:
		return "not found"
	case Conflict:
		return "already exists"
	case InvalidLength:
		return "invalid length"
	case InsecureScheme:
		return "insecure URI scheme"
	case InvalidMemoryFields:
		return "invalid memory fields"
	case InvalidOwner:
		return "invalid owner"
	case MemoryLocked:
		return "memory is locked"
	case AgentActive:
		return "agent is active"
	case StakingEnabled:
		return "staking is enabled"
	case StakingNotEnabled:
		return "staking is not enabled"
	case InvalidAmount:
		return "invalid amount"
	case BelowMinimumStake:
		return "below minimum stake"
	case NoStake:
		return "no stake to withdraw"
	case InvalidMinStake:
		return "invalid minimum stake"
	case InsufficientFunds:
		return "insufficient funds"
	case InvalidFeeConfig:
		return "invalid fee configuration"
	case InvalidMint:
		return "invalid mint"
	case InternalError:
		return "internal error"
	case EncodingError:
		return "encoding error"
	case UnknownError:
		return "unknown error"
	default:
		return "unknown"
	}
}
