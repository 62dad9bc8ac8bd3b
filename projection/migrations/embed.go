// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package migrations - projection schema
package migrations

import "embed"

// FS - embedded schema migrations, applied in file name order
//
//go:embed *.sql
var FS embed.FS
