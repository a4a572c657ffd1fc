// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// ZeroHash is the "unset" sentinel for 32-byte digests.
var ZeroHash [32]byte

// IsZeroHash returns true if the digest is the unset sentinel.
func IsZeroHash(h [32]byte) bool { return h == ZeroHash }

// ValidateCardURI checks the card URI's length and scheme. The referenced
// document is never fetched or verified.
func ValidateCardURI(uri string) error {
	if len(uri) == 0 || len(uri) > MaxURILen {
		return errors.InvalidLength.WithFormat("card URI must be 1-%d bytes, got %d", MaxURILen, len(uri))
	}
	if !strings.HasPrefix(uri, "https://") && !strings.HasPrefix(uri, "ipfs://") {
		return errors.InsecureScheme.WithFormat("card URI must begin with https:// or ipfs://")
	}
	return nil
}

// ValidateMemory checks memory fields against the declared mode's truth
// table. The hash is the unset sentinel when all zero.
func ValidateMemory(mode MemoryMode, ptr []byte, hash [32]byte) error {
	if !mode.IsValid() {
		return errors.InvalidMemoryFields.WithFormat("unknown memory mode %d", mode)
	}
	if len(ptr) > MaxMemoryPtrLen {
		return errors.InvalidLength.WithFormat("memory pointer must be at most %d bytes, got %d", MaxMemoryPtrLen, len(ptr))
	}

	switch mode {
	case MemoryModeNone:
		if len(ptr) != 0 {
			return errors.InvalidMemoryFields.With("mode none requires an empty pointer")
		}

	case MemoryModeCid:
		// Opaque content-identifier bytes; no hash is stored
		if len(ptr) == 0 {
			return errors.InvalidMemoryFields.With("mode cid requires a pointer")
		}

	case MemoryModeIpns, MemoryModeManifest:
		if len(ptr) == 0 {
			return errors.InvalidMemoryFields.WithFormat("mode %v requires a pointer", mode)
		}
		if IsZeroHash(hash) {
			return errors.InvalidMemoryFields.WithFormat("mode %v requires a non-zero hash", mode)
		}

	case MemoryModeUrl:
		if len(ptr) == 0 {
			return errors.InvalidMemoryFields.With("mode url requires a pointer")
		}
		if !utf8.Valid(ptr) {
			return errors.InvalidMemoryFields.With("mode url requires a UTF-8 pointer")
		}
		if !strings.HasPrefix(string(ptr), "https://") {
			return errors.InsecureScheme.With("URL memory pointer must begin with https://")
		}
		if IsZeroHash(hash) {
			return errors.InvalidMemoryFields.With("mode url requires a non-zero hash")
		}
	}

	return nil
}

// ApplyMemory validates memory fields and applies them to the record. For
// mode None the pointer buffer is zero-filled; for mode Cid no hash is
// stored.
func (a *AgentRecord) ApplyMemory(mode MemoryMode, ptr []byte, hash [32]byte) error {
	err := ValidateMemory(mode, ptr, hash)
	if err != nil {
		return err
	}

	switch mode {
	case MemoryModeNone:
		a.ClearMemory()
	case MemoryModeCid:
		a.MemoryMode = mode
		a.SetMemoryPtr(ptr)
		a.MemoryHash = ZeroHash
	default:
		a.MemoryMode = mode
		a.SetMemoryPtr(ptr)
		a.MemoryHash = hash
	}
	return nil
}

// PreviewString truncates a pointer or URI for event payloads.
func PreviewString(b []byte) string {
	const maxPreview = 32
	if len(b) > maxPreview {
		b = b[:maxPreview]
	}
	return string(b)
}
