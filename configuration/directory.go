// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/util"
)

// DataDirectory - resolve the data_directory setting
//
// "." means the directory holding the configuration file; the
// directory must already exist
func DataDirectory(configurationFileName string, dataDirectory string) (string, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return "", err
	}

	switch dataDirectory {
	case "", "~":
		return "", fault.ErrInvalidDataDirectory
	case ".":
		dataDirectory, _ = filepath.Split(configurationFileName)
	}
	dataDirectory = filepath.Clean(dataDirectory)

	if fileInfo, err := os.Stat(dataDirectory); nil != err {
		return "", err
	} else if !fileInfo.IsDir() {
		return "", fault.ErrInvalidDataDirectory
	}
	return dataDirectory, nil
}

// PlainFileIn - place a bare file name in a directory
func PlainFileIn(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
		return util.EnsureAbsolute(directory, name), nil
	default:
		return "", fault.ErrInvalidFileName
	}
}
