// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/archerd/configuration"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultValidatorConnect = "tcp://127.0.0.1:4004"

	defaultLogDirectory = "log"
	defaultLogFile      = "archer-processor.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - log levels per tag
type LoglevelMap map[string]string

var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// ValidatorType - where the validator accepts transaction processors
type ValidatorType struct {
	Connect string `gluamapper:"connect" json:"connect"`
	Timeout int    `gluamapper:"timeout" json:"timeout"` // seconds, 0 = block
}

// Configuration - the processor configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Validator     ValidatorType        `gluamapper:"validator" json:"validator"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Validator: ValidatorType{
			Connect: defaultValidatorConnect,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	dataDirectory, err := configuration.DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = dataDirectory

	if "" == options.Validator.Connect {
		return nil, fault.ErrMissingConnect
	}
	if options.Validator.Timeout < 0 {
		return nil, fault.ErrInvalidTimeout
	}

	util.AbsoluteAll(options.DataDirectory,
		&options.PidFile,
		&options.Logging.Directory,
	)

	options.Logging.File, err = configuration.PlainFileIn(options.Logging.Directory, options.Logging.File)
	if nil != err {
		return nil, err
	}

	if err := util.MakeDirectories(options.Logging.Directory); nil != err {
		return nil, err
	}

	return options, nil
}
