// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/decred/slog"

	"github.com/massalabs/massa-pos/posstate"
)

// log is this command's own logger, in the same package-level-var idiom
// as every subsystem package it wires below.
var log = slog.Disabled

// subsystemLoggers maps each subsystem's log tag to the UseLogger hook it
// exposes, following the same per-package log.go convention the final
// state package itself uses internally.
var subsystemLoggers = map[string]func(slog.Logger){
	"PSTA": posstate.UseLogger,
}

// initLogging wires a single slog backend across this command and every
// subsystem logger, at the requested level.
func initLogging(level string) error {
	backend := slog.NewBackend(os.Stdout)
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		lvl = slog.LevelInfo
	}

	log = backend.Logger("MAIN")
	log.SetLevel(lvl)

	for tag, use := range subsystemLoggers {
		l := backend.Logger(tag)
		l.SetLevel(lvl)
		use(l)
	}
	return nil
}
