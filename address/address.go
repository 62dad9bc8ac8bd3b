// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - global state addresses for the archer family
//
// An address is 70 lowercase hex characters:
//
//	[0:6]   namespace prefix, SHA-512 of the family name
//	[6:8]   infix selecting the record kind
//	[8:70]  first 62 characters of SHA-512 of the logical key
package address

import (
	"crypto/sha512"
	"encoding/hex"
	"regexp"
	"strings"
	"sync"

	"github.com/bitmark-inc/archerd/fault"
)

// FamilyName - transaction family that owns the namespace
const FamilyName = "archer"

// lengths in hex characters
const (
	prefixLength = 6
	infixLength  = 2
	keyLength    = 62
	Length       = prefixLength + infixLength + keyLength
)

// Kind - the record kind encoded in an address
type Kind int

// record kinds
const (
	Unknown Kind = iota
	Account
	Merchant
)

const (
	accountInfix  = "00"
	merchantInfix = "01"
)

var namespace = hexDigest(FamilyName)[:prefixLength]

var namespaceExpression struct {
	sync.Once
	re *regexp.Regexp
}

// String - name of the kind
func (k Kind) String() string {
	switch k {
	case Account:
		return "account"
	case Merchant:
		return "merchant"
	default:
		return "unknown"
	}
}

// Namespace - the six character prefix shared by all archer addresses
func Namespace() string {
	return namespace
}

// FilterPattern - regular expression for event subscription filters
func FilterPattern() string {
	return "^" + namespace + ".*"
}

// InNamespace - check that an address belongs to the archer family
func InNamespace(address string) bool {
	namespaceExpression.Do(func() {
		namespaceExpression.re = regexp.MustCompile("^" + namespace)
	})
	return namespaceExpression.re.MatchString(address)
}

// Calculate - derive the address of a record from its kind and key
func Calculate(kind Kind, key string) string {
	infix := ""
	switch kind {
	case Account:
		infix = accountInfix
	case Merchant:
		infix = merchantInfix
	default:
		fault.Panicf("address: cannot calculate for kind: %d", kind)
	}
	return namespace + infix + hexDigest(key)[:keyLength]
}

// AccountAddress - all accounts sharing a name share one address
func AccountAddress(name string) string {
	return Calculate(Account, name)
}

// MerchantAddress - merchants are keyed by public key
func MerchantAddress(publicKey string) string {
	return Calculate(Merchant, publicKey)
}

// KindOf - classify an address from its infix
func KindOf(address string) Kind {
	if len(address) < prefixLength+infixLength {
		return Unknown
	}
	switch strings.ToLower(address[prefixLength : prefixLength+infixLength]) {
	case accountInfix:
		return Account
	case merchantInfix:
		return Merchant
	default:
		return Unknown
	}
}

func hexDigest(s string) string {
	digest := sha512.Sum512([]byte(s))
	return hex.EncodeToString(digest[:])
}
