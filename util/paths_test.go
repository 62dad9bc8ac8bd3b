// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/archerd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/x", util.EnsureAbsolute("/data", "./y/../x"), "not cleaned")
}

func TestAbsoluteAll(t *testing.T) {
	a := "state"
	b := ""
	c := "/tmp/pid"
	util.AbsoluteAll("/data", &a, &b, &c)

	assert.Equal(t, "/data/state", a, "relative path")
	assert.Equal(t, "", b, "empty path changed")
	assert.Equal(t, "/tmp/pid", c, "absolute path changed")
}

func TestMakeDirectories(t *testing.T) {
	root := t.TempDir()
	one := filepath.Join(root, "a", "b")
	two := filepath.Join(root, "c")

	assert.False(t, util.FileExists(one), "exists before creation")
	assert.Nil(t, util.MakeDirectories(one, two), "make")
	assert.True(t, util.FileExists(one), "nested directory missing")
	assert.True(t, util.FileExists(two), "directory missing")
	assert.Nil(t, util.MakeDirectories(one), "existing directory")
}
