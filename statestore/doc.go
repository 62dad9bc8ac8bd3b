// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package statestore - local key/value state for the archer family
//
// state containers are stored in LevelDB under their 70 character
// address; a Context collects the writes of a single transaction and
// only Commit makes them visible, so a rejected transaction leaves no
// trace
package statestore
