// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize the record database and program state",
	Run:   runInit,
}

var cmdStatus = &cobra.Command{
	Use:   "status",
	Short: "Show the program state and fee schedule",
	Run:   runStatus,
}

var cmdAgent = &cobra.Command{
	Use:   "agent [creator]",
	Short: "Show the agent record for a creator identity",
	Args:  cobra.ExactArgs(1),
	Run:   runAgent,
}

var flagInit struct {
	Treasury string
}

func init() {
	cmdInit.Flags().StringVar(&flagInit.Treasury, "treasury", "", "Treasury identity (hex)")
	check(cmdInit.MarkFlagRequired("treasury"))
	cmdMain.AddCommand(cmdInit, cmdStatus, cmdAgent)
}

func runInit(*cobra.Command, []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	db, close := openDatabase(cfg, logger)
	defer close()

	treasury, err := address.Parse(flagInit.Treasury)
	check(err)

	x := newExecutor(db, logger)
	_, err = x.Execute(&protocol.Envelope{
		Signer: treasury,
		Body:   &protocol.InitProgramState{Treasury: treasury},
	})
	check(err)

	logger.Info().Stringer("treasury", treasury).Msg("Program state initialized")
}

func runStatus(*cobra.Command, []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	db, close := openDatabase(cfg, logger)
	defer close()

	check(db.View(func(batch *database.Batch) error {
		state, err := batch.ProgramState()
		if err != nil {
			return err
		}
		fmt.Printf("treasury:        %v\n", state.Treasury)
		fmt.Printf("fee immediate:   %d / %d\n", state.FeeImmediate, protocol.RateDenominator)
		fmt.Printf("fee regular:     %d / %d\n", state.FeeRegular, protocol.RateDenominator)
		fmt.Printf("fee max:         %d / %d\n", state.FeeMax, protocol.RateDenominator)
		fmt.Printf("decay duration:  %ds\n", state.DecayDuration)
		return nil
	}))
}

func runAgent(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	db, close := openDatabase(cfg, logger)
	defer close()

	creator, err := address.Parse(args[0])
	check(err)
	addr, _ := address.ForAgent(creator)

	check(db.View(func(batch *database.Batch) error {
		agent, err := batch.Agent(addr)
		if err != nil {
			return err
		}
		fmt.Printf("address:     %v\n", addr)
		fmt.Printf("creator:     %v\n", agent.Creator)
		fmt.Printf("owner:       %v\n", agent.Owner)
		fmt.Printf("card URI:    %s\n", agent.GetCardURI())
		fmt.Printf("card hash:   %x\n", agent.CardHash)
		fmt.Printf("memory mode: %v\n", agent.MemoryMode)
		if agent.MemoryMode != protocol.MemoryModeNone {
			fmt.Printf("memory ptr:  %s\n", protocol.PreviewString(agent.GetMemoryPtr()))
		}
		fmt.Printf("active:      %v\n", agent.Active())
		fmt.Printf("locked:      %v\n", agent.Locked())
		fmt.Printf("staking:     %v\n", agent.HasStaking())
		return nil
	}))
}
