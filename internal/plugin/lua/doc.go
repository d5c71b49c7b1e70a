// Package lua wraps gopher-lua with a sandboxed state for hxmotion scripts.
//
// A State opens only the base, table, string and math libraries, removes
// dofile, loadfile, load and loadstring, and restricts require to the
// safe built-in modules and modules preloaded by the host (such as "ks").
// Script output from print goes to a configurable writer.
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile("motions.lua"); err != nil {
//	    return err
//	}
//
// gopher-lua's LState is not goroutine-safe; State serializes access with
// a mutex.
package lua
