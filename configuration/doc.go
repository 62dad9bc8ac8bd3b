// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is a Lua chunk that returns a table; base Lua is
// available so values may be computed, read from files or taken from
// the environment with os.getenv. The global arg[0] holds the path of
// the configuration file.
package configuration
