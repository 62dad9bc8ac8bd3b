// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/archerd/fault"
)

// ErrNotATable - the configuration chunk did not return a table
var ErrNotATable = fault.InvalidError("configuration must return a table")

// ParseConfigurationFile - execute a Lua file and map the table it
// returns onto config using gluamapper tags
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); err != nil {
		return err
	}
	return mapResult(L, config)
}

// ParseConfigurationString - as ParseConfigurationFile for an in-memory chunk
func ParseConfigurationString(chunk string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()
	L.SetGlobal("arg", &lua.LTable{})

	if err := L.DoString(chunk); err != nil {
		return err
	}
	return mapResult(L, config)
}

func mapResult(L *lua.LState, config interface{}) error {
	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return ErrNotATable
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: "gluamapper",
		},
	}
	return mapper.Map(table, config)
}
