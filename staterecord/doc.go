// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package staterecord - containers stored at global state addresses
//
// Several logical keys can hash to one address so each address holds
// a container: a repeated field 1 of entry records.
//
//	Account:  1 name string, 2 number uint32, 3 balance sint32
//	Merchant: 1 public_key string, 2 name string, 3 timestamp sint64
package staterecord

const fieldEntries = 1
