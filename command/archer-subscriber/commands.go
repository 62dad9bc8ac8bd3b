// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/archerd/projection"
)

// commands run against the configured database instead of subscribing
//
// returns true if the program should exit
func processDataCommand(program string, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "init", "i":
		store, err := projection.Open(options.Database.Name)
		if nil != err {
			exitwithstatus.Message("%s: initialise database: %q  error: %s", program, options.Database.Name, err)
		}
		defer store.Close()
		fmt.Printf("initialised database: %q\n", options.Database.Name)

	case "blocks", "b":
		store, err := projection.Open(options.Database.Name)
		if nil != err {
			exitwithstatus.Message("%s: open database: %q  error: %s", program, options.Database.Name, err)
		}
		defer store.Close()

		blocks, err := store.Blocks(context.Background(), projection.KnownCount)
		if nil != err {
			exitwithstatus.Message("%s: read blocks error: %s", program, err)
		}
		for _, b := range blocks {
			fmt.Printf("%10d  %s\n", b.Number, b.ID)
		}

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %v\n", command)
		}

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                 (h)      - display this message\n\n")
		fmt.Printf("  init                 (i)      - create or update the projection database\n\n")
		fmt.Printf("  blocks               (b)      - list the most recent blocks in the projection\n\n")
		fmt.Printf("  run without a command to subscribe\n\n")
		exitwithstatus.Exit(1)
	}

	return true
}
