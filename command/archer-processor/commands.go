// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/processor"
)

// commands that need no configuration
func processSetupCommand(program string, arguments []string) {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "family", "f":
		fmt.Printf("family:    %s\n", address.FamilyName)
		fmt.Printf("versions:  %v\n", processor.New(nil).FamilyVersions())
		fmt.Printf("namespace: %s\n", address.Namespace())

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %v\n", command)
		}

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                 (h)      - display this message\n\n")
		fmt.Printf("  family               (f)      - display the family name, versions and namespace\n\n")
		fmt.Printf("  run without a command and with --config-file=FILE to start processing\n\n")
		exitwithstatus.Exit(1)
	}
}
