package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM removes every library that could execute commands, touch the
// filesystem or load further code. string, table and math stay available
// along with the basic functions (type, tostring, pairs, ...).
func sandboxLuaVM(L *lua.LState) {
	// os.execute, os.exit, os.getenv, ...
	L.SetGlobal("os", lua.LNil)

	// io.open, io.popen, ...
	L.SetGlobal("io", lua.LNil)

	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("package", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)

	// debug can reach metatables and bypass the read-only platform table
	L.SetGlobal("debug", lua.LNil)
	L.SetGlobal("rawset", lua.LNil)
	L.SetGlobal("setmetatable", lua.LNil)
	L.SetGlobal("getmetatable", lua.LNil)
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
