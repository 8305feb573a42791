// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command posnode is a minimal host process for a PoS final state: it
// resolves network parameters, wires logging, and constructs the
// FinalState a real execution engine and bootstrap transport would then
// drive. It has no execution engine or network transport of its own —
// those are out of scope (see DESIGN.md) — so it exits immediately after
// reporting the constructed state's starting point.
package main

import (
	"fmt"
	"os"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/posstate"
	"github.com/massalabs/massa-pos/selector"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, netParams, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := initLogging(cfg.Debug); err != nil {
		return err
	}

	log.Infof("starting posnode on %s (thread_count=%d periods_per_cycle=%d)",
		netParams.Name, cfg.Config.ThreadCount, cfg.Config.PeriodsPerCycle)

	initialRolls, err := loadInitialRolls(cfg.Config.InitialSCELedgerPath)
	if err != nil {
		log.Warnf("could not load initial ledger %q, starting with no rolls: %v",
			cfg.Config.InitialSCELedgerPath, err)
		initialRolls = map[address.Address]uint64{}
	}

	sel := selector.NewMock(3)
	fs, err := posstate.New(&cfg.Config, initialRolls, [2]chainhash.Hash{}, sel)
	if err != nil {
		return fmt.Errorf("constructing final state: %w", err)
	}

	log.Infof("final state ready: %d address(es) with rolls, cycle history depth %d",
		len(initialRolls), fs.CycleHistoryLen())
	return nil
}

// loadInitialRolls is a placeholder for the real ledger-ingestion path: a
// production node parses the SCE ledger snapshot named by
// InitialSCELedgerPath and derives each address's genesis roll count from
// it. That ledger format belongs to the execution engine, not the final
// state, so it is out of scope here (DESIGN.md); this always reports "no
// file" for any path that does not already exist.
func loadInitialRolls(path string) (map[address.Address]uint64, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return map[address.Address]uint64{}, nil
}
