// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/archerd/background"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/processor"
	"github.com/bitmark-inc/archerd/txprocessor"
	"github.com/bitmark-inc/archerd/zmqutil"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)
	}

	if len(arguments) > 0 {
		processSetupCommand(program, arguments)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	masterConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %#v", masterConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != masterConfiguration.PidFile {
		lockFile, err := os.OpenFile(masterConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, masterConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(masterConfiguration.PidFile)
	}

	timeout := time.Duration(masterConfiguration.Validator.Timeout) * time.Second
	client, err := zmqutil.NewClient(timeout)
	if nil != err {
		log.Criticalf("transport error: %s", err)
		exitwithstatus.Message("%s: transport error: %s", program, err)
	}

	handler := processor.New(logger.New("processor"))
	tp := txprocessor.New(masterConfiguration.Validator.Connect, client, handler, logger.New("tp"))

	failed := make(chan error, 1)
	processes := background.Start(background.Processes{
		runner(tp, log, failed),
	}, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-ch:
		log.Infof("received signal: %v", sig)
		if 0 == len(options["quiet"]) {
			fmt.Printf("\nreceived signal: %v\n", sig)
			fmt.Printf("\nshutting down...\n")
		}
	case err := <-failed:
		log.Criticalf("processor stopped: %s", err)
		exitCode = 1
	}

	processes.Stop()
	if 0 != exitCode {
		exitwithstatus.Message("%s: processor failed: see log", program)
	}
}

// run the processor until shutdown, reporting a premature end on failed
func runner(tp *txprocessor.Processor, log *logger.L, failed chan<- error) background.Process {
	return background.Func(func(args interface{}, shutdown <-chan struct{}) {
		result := make(chan error, 1)
		go func() {
			result <- tp.Start()
		}()

		select {
		case <-shutdown:
			if err := tp.Stop(); nil != err {
				log.Debugf("stop: %s", err)
			}
			if err := <-result; nil != err {
				log.Errorf("processor result: %s", err)
			}
		case err := <-result:
			if nil == err {
				err = fault.ErrNotRunning
			}
			failed <- err
			<-shutdown
		}
	})
}
