// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/agentrynetwork/agentry/internal/core/execute"
	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/internal/token"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

const cardURI = "https://example.com/card.json"

var (
	cardHash = [32]byte{0x0C}
	memHash  = [32]byte{0x0D}
	mint     = address.Address{0xAA}
	treasury = address.Address{0xFE}
)

func addr(b byte) address.Address { return address.Address{0: b} }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type env struct {
	t      *testing.T
	x      *execute.Executor
	db     *database.Database
	ledger token.Ledger
	clock  *fakeClock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	db := database.OpenInMemory(zerolog.Nop())
	ledger := token.NewLedger()
	x, err := execute.NewExecutor(execute.Options{
		Database: db,
		Ledger:   ledger,
		Logger:   zerolog.Nop(),
		Now:      clock.Now,
	})
	require.NoError(t, err)
	return &env{t, x, db, ledger, clock}
}

func (e *env) execute(signer address.Address, body protocol.OperationBody) (protocol.Event, error) {
	return e.x.Execute(&protocol.Envelope{Signer: signer, Body: body})
}

func (e *env) requireExecute(signer address.Address, body protocol.OperationBody) protocol.Event {
	e.t.Helper()
	event, err := e.execute(signer, body)
	require.NoError(e.t, err)
	return event
}

// createAgent creates a plain agent for the creator and returns its address.
func (e *env) createAgent(creator address.Address, hasStaking bool) address.Address {
	e.t.Helper()
	e.requireExecute(creator, &protocol.CreateAgent{
		Creator:    creator,
		CardURI:    cardURI,
		CardHash:   cardHash,
		HasStaking: hasStaking,
	})
	agentAddr, _ := address.ForAgent(creator)
	return agentAddr
}

func (e *env) agent(addr address.Address) *protocol.AgentRecord {
	e.t.Helper()
	var agent *protocol.AgentRecord
	err := e.db.View(func(batch *database.Batch) error {
		var err error
		agent, err = batch.Agent(addr)
		return err
	})
	require.NoError(e.t, err)
	return agent
}

func (e *env) agentMissing(addr address.Address) {
	e.t.Helper()
	err := e.db.View(func(batch *database.Batch) error {
		_, err := batch.Agent(addr)
		return err
	})
	require.ErrorIs(e.t, err, errors.NotFound)
}

func (e *env) fund(owner, account address.Address, amount uint64) {
	e.t.Helper()
	err := e.db.Update(func(batch *database.Batch) error {
		return e.ledger.Mint(batch, mint, account, owner, amount)
	})
	require.NoError(e.t, err)
}

func (e *env) balance(account address.Address) uint64 {
	e.t.Helper()
	var balance uint64
	err := e.db.View(func(batch *database.Batch) error {
		var err error
		balance, err = e.ledger.Balance(batch, account)
		return err
	})
	require.NoError(e.t, err)
	return balance
}

func TestCreateAgent(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)

	event := e.requireExecute(creator, &protocol.CreateAgent{
		Creator:  creator,
		CardURI:  cardURI,
		CardHash: cardHash,
	})

	agentAddr, bump := address.ForAgent(creator)
	created, ok := event.(*protocol.AgentCreated)
	require.True(t, ok)
	require.Equal(t, agentAddr, created.Agent)
	require.Equal(t, creator, created.Creator)
	require.Equal(t, creator, created.Owner)

	agent := e.agent(agentAddr)
	require.Equal(t, uint8(protocol.SchemaVersion), agent.Version)
	require.Equal(t, creator, agent.Creator)
	require.Equal(t, creator, agent.Owner)
	require.Equal(t, cardURI, agent.GetCardURI())
	require.Equal(t, cardHash, agent.CardHash)
	require.Equal(t, bump, agent.Bump)
	require.True(t, agent.Active())
	require.False(t, agent.Locked())
	require.False(t, agent.HasStaking())
	require.Equal(t, protocol.MemoryModeNone, agent.MemoryMode)
}

func TestCreateAgentWithMemory(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)

	e.requireExecute(creator, &protocol.CreateAgent{
		Creator:  creator,
		CardURI:  cardURI,
		CardHash: cardHash,
		Memory: &protocol.MemoryFields{
			Mode: protocol.MemoryModeCid,
			Ptr:  []byte("bafybeigdyrzt5"),
		},
	})

	agentAddr, _ := address.ForAgent(creator)
	agent := e.agent(agentAddr)
	require.Equal(t, protocol.MemoryModeCid, agent.MemoryMode)
	require.Equal(t, []byte("bafybeigdyrzt5"), agent.GetMemoryPtr())
	require.True(t, protocol.IsZeroHash(agent.MemoryHash))
}

func TestCreateAgentDuplicate(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	_, err := e.execute(creator, &protocol.CreateAgent{
		Creator: creator,
		CardURI: "https://example.com/other.json",
	})
	require.ErrorIs(t, err, errors.Conflict)

	// The existing record is untouched
	require.Equal(t, cardURI, e.agent(agentAddr).GetCardURI())
}

func TestCreateAgentRequiresCreatorSignature(t *testing.T) {
	e := newEnv(t)

	_, err := e.execute(addr(2), &protocol.CreateAgent{Creator: addr(1), CardURI: cardURI})
	require.ErrorIs(t, err, errors.NotAuthorized)

	agentAddr, _ := address.ForAgent(addr(1))
	e.agentMissing(agentAddr)
}

func TestCreateAgentCardValidation(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)

	_, err := e.execute(creator, &protocol.CreateAgent{Creator: creator, CardURI: ""})
	require.ErrorIs(t, err, errors.InvalidLength)

	_, err = e.execute(creator, &protocol.CreateAgent{Creator: creator, CardURI: "http://example.com/card.json"})
	require.ErrorIs(t, err, errors.InsecureScheme)

	agentAddr, _ := address.ForAgent(creator)
	e.agentMissing(agentAddr)
}

func TestSetCard(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	newHash := [32]byte{0x1C}
	e.requireExecute(creator, &protocol.SetCard{
		Agent:    agentAddr,
		CardURI:  "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf",
		CardHash: newHash,
	})
	agent := e.agent(agentAddr)
	require.Equal(t, "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf", agent.GetCardURI())
	require.Equal(t, newHash, agent.CardHash)

	// Only the owner may replace the card
	_, err := e.execute(addr(2), &protocol.SetCard{Agent: agentAddr, CardURI: cardURI})
	require.ErrorIs(t, err, errors.NotAuthorized)

	// An invalid URI is rejected before anything is loaded
	_, err = e.execute(creator, &protocol.SetCard{Agent: agentAddr, CardURI: "http://x"})
	require.ErrorIs(t, err, errors.InsecureScheme)
	require.Equal(t, "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf", e.agent(agentAddr).GetCardURI())
}

func TestSetMemoryRejectsInsecureURL(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	// An http URL is rejected and the record keeps its previous memory
	_, err := e.execute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeUrl,
		Ptr:   []byte("http://example.com/mem"),
		Hash:  memHash,
	})
	require.ErrorIs(t, err, errors.InsecureScheme)
	require.Equal(t, protocol.MemoryModeNone, e.agent(agentAddr).MemoryMode)

	// The https variant succeeds and stores mode Url
	e.requireExecute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeUrl,
		Ptr:   []byte("https://example.com/mem"),
		Hash:  memHash,
	})
	agent := e.agent(agentAddr)
	require.Equal(t, protocol.MemoryModeUrl, agent.MemoryMode)
	require.Equal(t, []byte("https://example.com/mem"), agent.GetMemoryPtr())
	require.Equal(t, memHash, agent.MemoryHash)
}

func TestSetMemoryModeMismatch(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	_, err := e.execute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeNone,
		Ptr:   []byte("leftover"),
	})
	require.ErrorIs(t, err, errors.InvalidMemoryFields)

	_, err = e.execute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeIpns,
		Ptr:   []byte("k51qzi5uqu5d"),
	})
	require.ErrorIs(t, err, errors.InvalidMemoryFields)
}

func TestLockMemory(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	e.requireExecute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeCid,
		Ptr:   []byte("bafyfoo"),
	})
	e.requireExecute(creator, &protocol.LockMemory{Agent: agentAddr})
	require.True(t, e.agent(agentAddr).Locked())

	// Locked memory rejects every further mutation
	before, err := e.agent(agentAddr).MarshalBinary()
	require.NoError(t, err)
	_, err = e.execute(creator, &protocol.SetMemory{
		Agent: agentAddr,
		Mode:  protocol.MemoryModeCid,
		Ptr:   []byte("bafybar"),
	})
	require.ErrorIs(t, err, errors.MemoryLocked)
	after, err := e.agent(agentAddr).MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, before, after)

	// The lock binds only memory; the card stays mutable
	e.requireExecute(creator, &protocol.SetCard{Agent: agentAddr, CardURI: cardURI, CardHash: cardHash})
}

func TestCloseAgent(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, false)

	// An active record cannot be closed
	_, err := e.execute(creator, &protocol.CloseAgent{Agent: agentAddr, Recipient: creator})
	require.ErrorIs(t, err, errors.AgentActive)

	e.requireExecute(creator, &protocol.SetActive{Agent: agentAddr, Active: false})
	require.False(t, e.agent(agentAddr).Active())

	e.requireExecute(creator, &protocol.CloseAgent{Agent: agentAddr, Recipient: creator})
	e.agentMissing(agentAddr)

	// The address is derivable again for a fresh creation
	e.createAgent(creator, false)
	require.True(t, e.agent(agentAddr).Active())
}

func TestCloseAgentStakingEnabled(t *testing.T) {
	e := newEnv(t)
	creator := addr(1)
	agentAddr := e.createAgent(creator, true)

	e.requireExecute(creator, &protocol.SetActive{Agent: agentAddr, Active: false})
	_, err := e.execute(creator, &protocol.CloseAgent{Agent: agentAddr, Recipient: creator})
	require.ErrorIs(t, err, errors.StakingEnabled)
}

func TestTransferOwner(t *testing.T) {
	e := newEnv(t)
	creator, newOwner := addr(1), addr(2)
	agentAddr := e.createAgent(creator, false)

	_, err := e.execute(creator, &protocol.TransferOwner{Agent: agentAddr, NewOwner: address.Zero})
	require.ErrorIs(t, err, errors.InvalidOwner)

	e.requireExecute(creator, &protocol.TransferOwner{Agent: agentAddr, NewOwner: newOwner})
	agent := e.agent(agentAddr)
	require.Equal(t, newOwner, agent.Owner)
	require.Equal(t, creator, agent.Creator)

	// The transfer takes effect immediately
	_, err = e.execute(creator, &protocol.SetActive{Agent: agentAddr, Active: false})
	require.ErrorIs(t, err, errors.NotAuthorized)
	e.requireExecute(newOwner, &protocol.SetActive{Agent: agentAddr, Active: false})
}

func TestExecuteNilOperation(t *testing.T) {
	e := newEnv(t)
	_, err := e.x.Execute(nil)
	require.ErrorIs(t, err, errors.InternalError)
	_, err = e.x.Execute(&protocol.Envelope{Signer: addr(1)})
	require.ErrorIs(t, err, errors.InternalError)
}
