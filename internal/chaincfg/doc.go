// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network-level parameters a PoS node needs
// before it can build a FinalState: thread count, cycle length, the
// genesis clock, and bootstrap DNS seeds.
//
// Four standard networks are predefined, following the same "Params
// struct per network, one constructor each" shape used for consensus
// network configuration elsewhere in the ecosystem: MainNet, TestNet,
// SimNet (local multi-node testing) and RegNet (single-node regression
// testing, deterministic clock). A (typically global) var may be
// assigned the result of one of these constructors for use as the
// application's active network:
//
//	var network = flag.String("network", "mainnet", "network to operate on")
//
//	var params = chaincfg.MainNetParams()
//
//	func main() {
//		flag.Parse()
//		switch *network {
//		case "testnet":
//			params = chaincfg.TestNetParams()
//		case "simnet":
//			params = chaincfg.SimNetParams()
//		case "regnet":
//			params = chaincfg.RegNetParams()
//		}
//	}
package chaincfg
