// Package plugin lets editing tools be written as Lua scripts instead of
// Go types. A script tool satisfies the same contract as a native one: it
// is registered with the manager, arms transitions, parks in waits and
// receives events, with the scheduling calls bridged into Lua.
//
// # Script contract
//
// A script defines a global reset function and any number of handler
// functions. reset receives the tool handle and arms the entry
// transition; handlers receive the tool handle and the triggering event:
//
//	function reset(tool)
//	    tool:go("main", "command", "activate")
//	end
//
//	function main(tool, ev)
//	    while true do
//	        local got = tool:wait("mouse", "click")
//	        if got == nil then return end  -- cancelled, unwind
//	        -- got.category, got.action, got.x, got.y ...
//	    end
//	end
//
// The tool handle offers go(handler, category, action), wait(category,
// action) returning an event table or nil on cancellation, and pass().
// Categories and actions are named with the lowercase strings listed in
// this package; "any" is the wildcard.
//
// gopher-lua states are not goroutine safe, but no locking is needed
// here: handlers run inside the manager's single logical thread, so each
// script tool's state is only ever touched by one goroutine at a time.
package plugin
