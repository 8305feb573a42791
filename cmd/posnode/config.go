// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/massalabs/massa-pos/internal/chaincfg"
	"github.com/massalabs/massa-pos/posconfig"
)

const defaultConfigFilename = "posnode.conf"

// nodeFlags is the top-level CLI/INI surface, following the same
// jessevdk/go-flags struct-tag style posconfig.Config uses for the final
// state's own options.
type nodeFlags struct {
	Network string `long:"network" default:"mainnet" description:"Network to operate on: mainnet, testnet, simnet, regnet"`
	DataDir string `long:"datadir" description:"Directory to store node data in"`
	LogDir  string `long:"logdir" description:"Directory to log output to"`
	Debug   string `long:"debuglevel" default:"info" description:"Logging level: trace, debug, info, warn, error, critical"`

	posconfig.Config
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".posnode")
}

// loadConfig parses CLI arguments into a nodeFlags (no config file is
// read), then resolves the selected network's chaincfg.Params on top of
// it: explicit flags always win over a network's defaults, but unset
// geometry fields (thread count, cycle length, genesis clock) fall back to
// the network preset.
func loadConfig(args []string) (*nodeFlags, *chaincfg.Params, error) {
	cfg := nodeFlags{DataDir: defaultDataDir()}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, nil, err
	}

	var netParams *chaincfg.Params
	switch cfg.Network {
	case "mainnet":
		netParams = chaincfg.MainNetParams()
	case "testnet":
		netParams = chaincfg.TestNetParams()
	case "simnet":
		netParams = chaincfg.SimNetParams()
	case "regnet":
		netParams = chaincfg.RegNetParams()
	default:
		return nil, nil, fmt.Errorf("unknown network %q", cfg.Network)
	}

	// fromPreset reports whether an option was left to its struct-tag
	// default rather than given explicitly on the command line.
	fromPreset := func(long string) bool {
		opt := parser.FindOptionByLongName(long)
		return opt == nil || !opt.IsSet() || opt.IsSetDefault()
	}

	if fromPreset("threadcount") {
		cfg.Config.ThreadCount = netParams.ThreadCount
	}
	if fromPreset("periodspercycle") {
		cfg.Config.PeriodsPerCycle = netParams.PeriodsPerCycle
	}
	if cfg.Config.GenesisTimestamp.IsZero() {
		cfg.Config.GenesisTimestamp = netParams.GenesisTimestamp
	}
	if fromPreset("t0") {
		cfg.Config.T0 = netParams.T0
	}
	if fromPreset("historylength") {
		cfg.Config.HistoryLength = netParams.HistoryLength
	}
	if fromPreset("cyclelookback") {
		cfg.Config.CycleLookback = netParams.CycleLookback
	}
	if cfg.Config.InitialSCELedgerPath == "" {
		cfg.Config.InitialSCELedgerPath = filepath.Join(cfg.DataDir, cfg.Network, "initial_ledger.json")
	}

	return &cfg, netParams, nil
}
