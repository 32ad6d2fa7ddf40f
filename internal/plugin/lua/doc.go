// Package lua runs command handlers written in Lua.
//
// A handler script fills the global handlers table with functions keyed by
// command ID. Each function receives the host context as a table and the
// triggering event (or nil):
//
//	handlers["selection.delete"] = function(ctx, ev)
//	    if ctx.selection == 0 then
//	        return false -- let another command try
//	    end
//	end
//
// Returning false reports the command as not handled; any other result,
// including none, reports it handled.
//
// States are sandboxed: only the base, table, string and math libraries are
// opened, and the loaders (dofile, loadfile, load, loadstring, require) are
// removed. Calls into a State are serialized by its mutex.
package lua
