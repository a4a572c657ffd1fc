// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

var someHash = [32]byte{1: 1}

func TestValidateCardURI(t *testing.T) {
	cases := map[string]struct {
		uri string
		err errors.Status
	}{
		"Https":    {"https://example.com/card.json", 0},
		"Ipfs":     {"ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", 0},
		"Empty":    {"", errors.InvalidLength},
		"TooLong":  {"https://example.com/" + strings.Repeat("x", MaxURILen), errors.InvalidLength},
		"Http":     {"http://example.com/card.json", errors.InsecureScheme},
		"Ftp":      {"ftp://example.com/card.json", errors.InsecureScheme},
		"Relative": {"card.json", errors.InsecureScheme},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateCardURI(c.uri)
			if c.err == 0 {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestValidateMemory(t *testing.T) {
	cases := map[string]struct {
		mode MemoryMode
		ptr  []byte
		hash [32]byte
		err  errors.Status
	}{
		"NoneEmpty":       {MemoryModeNone, nil, ZeroHash, 0},
		"NoneWithPtr":     {MemoryModeNone, []byte("x"), ZeroHash, errors.InvalidMemoryFields},
		"CidOpaque":       {MemoryModeCid, []byte{0x01, 0x71, 0x12, 0x20}, ZeroHash, 0},
		"CidEmpty":        {MemoryModeCid, nil, ZeroHash, errors.InvalidMemoryFields},
		"IpnsOk":          {MemoryModeIpns, []byte("k51qzi5uqu5d"), someHash, 0},
		"IpnsNoHash":      {MemoryModeIpns, []byte("k51qzi5uqu5d"), ZeroHash, errors.InvalidMemoryFields},
		"IpnsNoPtr":       {MemoryModeIpns, nil, someHash, errors.InvalidMemoryFields},
		"ManifestOk":      {MemoryModeManifest, []byte("manifest-v1"), someHash, 0},
		"ManifestNoHash":  {MemoryModeManifest, []byte("manifest-v1"), ZeroHash, errors.InvalidMemoryFields},
		"UrlOk":           {MemoryModeUrl, []byte("https://example.com/mem"), someHash, 0},
		"UrlHttp":         {MemoryModeUrl, []byte("http://example.com/mem"), someHash, errors.InsecureScheme},
		"UrlNotUTF8":      {MemoryModeUrl, []byte{0xff, 0xfe, 0xfd}, someHash, errors.InvalidMemoryFields},
		"UrlNoHash":       {MemoryModeUrl, []byte("https://example.com/mem"), ZeroHash, errors.InvalidMemoryFields},
		"UnknownMode":     {MemoryMode(9), []byte("x"), someHash, errors.InvalidMemoryFields},
		"PtrOverCapacity": {MemoryModeCid, make([]byte, MaxMemoryPtrLen+1), ZeroHash, errors.InvalidLength},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateMemory(c.mode, c.ptr, c.hash)
			if c.err == 0 {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestApplyMemory(t *testing.T) {
	agent := new(AgentRecord)

	// Cid stores the pointer but never a hash
	require.NoError(t, agent.ApplyMemory(MemoryModeCid, []byte("bafyfoo"), someHash))
	require.Equal(t, MemoryModeCid, agent.MemoryMode)
	require.Equal(t, []byte("bafyfoo"), agent.GetMemoryPtr())
	require.True(t, IsZeroHash(agent.MemoryHash))

	// None zero-fills the pointer buffer so no stale bytes leak
	require.NoError(t, agent.ApplyMemory(MemoryModeNone, nil, ZeroHash))
	require.Equal(t, MemoryModeNone, agent.MemoryMode)
	require.Zero(t, agent.MemoryPtrLen)
	require.Equal(t, [MaxMemoryPtrLen]byte{}, agent.MemoryPtr)

	// A shorter pointer overwrites the tail of a longer one
	require.NoError(t, agent.ApplyMemory(MemoryModeUrl, []byte("https://example.com/a/very/long/memory/path"), someHash))
	require.NoError(t, agent.ApplyMemory(MemoryModeUrl, []byte("https://e.co/m"), someHash))
	require.Equal(t, []byte("https://e.co/m"), agent.GetMemoryPtr())
	for _, b := range agent.MemoryPtr[agent.MemoryPtrLen:] {
		require.Zero(t, b)
	}

	// A failed apply leaves the record unchanged
	before := *agent
	require.ErrorIs(t, agent.ApplyMemory(MemoryModeUrl, []byte("http://bad"), someHash), errors.InsecureScheme)
	require.Equal(t, before, *agent)
}
