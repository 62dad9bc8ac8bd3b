// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - file system path helpers
package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - a relative filePath is taken relative to directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// AbsoluteAll - make each non-empty path absolute in place
func AbsoluteAll(directory string, paths ...*string) {
	for _, p := range paths {
		if "" != *p {
			*p = EnsureAbsolute(directory, *p)
		}
	}
}

// FileExists - true if name can be stat'ed
func FileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// MakeDirectories - create each directory, and its parents, private to the user
func MakeDirectories(directories ...string) error {
	for _, d := range directories {
		if err := os.MkdirAll(d, 0700); nil != err {
			return err
		}
	}
	return nil
}
