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

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "archer.sqlite3"

	defaultStatisticsInterval = 60 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "archer-subscriber.log"
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

// ValidatorType - where the validator publishes events
type ValidatorType struct {
	Connect string `gluamapper:"connect" json:"connect"`
	Timeout int    `gluamapper:"timeout" json:"timeout"` // seconds, 0 = block
}

// DatabaseType - the projection database file
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the subscriber configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Validator     ValidatorType        `gluamapper:"validator" json:"validator"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Statistics    int                  `gluamapper:"statistics_interval" json:"statistics_interval"` // seconds, 0 = off
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

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},

		Statistics: defaultStatisticsInterval,

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
	if options.Validator.Timeout < 0 || options.Statistics < 0 {
		return nil, fault.ErrInvalidTimeout
	}

	util.AbsoluteAll(options.DataDirectory,
		&options.PidFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	)

	// file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		*f[0], err = configuration.PlainFileIn(*f[1], *f[0])
		if nil != err {
			return nil, err
		}
	}

	err = util.MakeDirectories(options.Database.Directory, options.Logging.Directory)
	if nil != err {
		return nil, err
	}

	return options, nil
}
