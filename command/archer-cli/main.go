// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

type metadata struct {
	database string
	state    string
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// logger is initialised once per process by the first command
var loggingStarted bool

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if loggingStarted {
		logger.Finalise()
	}
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "archer-cli"
	app.Usage = "archer ledger payloads, local state and projection queries"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "archer.sqlite3",
			Usage: " projection database `FILE`",
		},
		cli.StringFlag{
			Name:  "state, s",
			Value: "archer-state.leveldb",
			Usage: " local state database `DIRECTORY`",
		},
		cli.StringFlag{
			Name:  "log-directory, l",
			Value: os.TempDir(),
			Usage: " write archer-cli.log to `DIRECTORY`",
		},
	}

	payloadFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "action, a",
			Value: "",
			Usage: "*action `NAME` [deposit|withdraw|update-number|add-account|add-merchant]",
		},
		cli.StringFlag{
			Name:  "name, n",
			Value: "",
			Usage: "*account or merchant `NAME`",
		},
		cli.UintFlag{
			Name:  "number, u",
			Usage: "+account `NUMBER`",
		},
		cli.IntFlag{
			Name:  "amount, m",
			Usage: "+deposit or withdrawal `AMOUNT`",
		},
		cli.UintFlag{
			Name:  "new-number, N",
			Usage: "+replacement account `NUMBER`",
		},
		cli.Int64Flag{
			Name:  "timestamp, t",
			Usage: " merchant creation `SECONDS` [default now]",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "encode a transaction payload as hex",
			ArgsUsage: "\n   (* = required, + = required by some actions)",
			Flags:     payloadFlags,
			Action:    runEncode,
		},
		{
			Name:      "decode",
			Usage:     "decode a hex transaction payload",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: "*payload `HEX`",
				},
			},
			Action: runDecode,
		},
		{
			Name:      "address",
			Usage:     "compute a state address",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, c",
					Value: "",
					Usage: "+account `NAME`",
				},
				cli.StringFlag{
					Name:  "merchant, k",
					Value: "",
					Usage: "+merchant public `KEY`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "apply",
			Usage:     "apply a payload to the local state database",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: "*payload `HEX`",
				},
				cli.StringFlag{
					Name:  "signer, k",
					Value: "",
					Usage: "*signer public `KEY`",
				},
			},
			Action: runApply,
		},
		{
			Name:   "state",
			Usage:  "list the local state database",
			Action: runState,
		},
		{
			Name:      "account",
			Usage:     "account versions from the projection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*account `NAME`",
				},
				cli.UintFlag{
					Name:  "number, u",
					Usage: "*account `NUMBER`",
				},
				cli.Int64Flag{
					Name:  "block, b",
					Value: -1,
					Usage: " version valid at block `NUMBER` [default all versions]",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "balance",
			Usage:     "current balance from the projection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*account `NAME`",
				},
				cli.UintFlag{
					Name:  "number, u",
					Usage: "*account `NUMBER`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "merchant",
			Usage:     "merchant from the projection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*merchant public `KEY`",
				},
				cli.Int64Flag{
					Name:  "block, b",
					Value: -1,
					Usage: " version valid at block `NUMBER` [default current]",
				},
			},
			Action: runMerchant,
		},
		{
			Name:      "blocks",
			Usage:     "most recent blocks in the projection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 15,
					Usage: " number of blocks `COUNT`",
				},
			},
			Action: runBlocks,
		},
		{
			Name:  "version",
			Usage: "display version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		level := "critical"
		if c.GlobalBool("verbose") {
			level = "info"
		}
		logging := logger.Configuration{
			Directory: c.GlobalString("log-directory"),
			File:      "archer-cli.log",
			Size:      1024 * 1024,
			Count:     2,
			Console:   false,
			Levels: map[string]string{
				logger.DefaultTag: level,
			},
		}
		if !loggingStarted {
			if err := logger.Initialise(logging); nil != err {
				return err
			}
			loggingStarted = true
		}

		c.App.Metadata["config"] = &metadata{
			database: c.GlobalString("database"),
			state:    c.GlobalString("state"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	return app
}
