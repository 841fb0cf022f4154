// Package script runs Lua driver scripts against a remote control.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries; dofile, loadfile, load and loadstring are
// removed. Two modules are exposed:
//
//	remote.select(name)         select a registered command
//	remote.press()              press the button (error if nothing selected)
//	remote.undo()               undo; returns false when history was empty
//	remote.depth()              number of commands that can be undone
//	remote.selected()           description of the selected command, or nil
//	remote.commands()           sorted list of registered command names
//	remote.define(name, ...)    register a macro of existing commands
//
//	light.is_on()               current light state
//	light.name()                the light's name
//
// print writes to the runner's output. Example:
//
//	remote.select("on")
//	remote.press()
//	remote.undo()
//	remote.define("blink", "on", "off")
//	remote.select("blink")
//	remote.press()
package script
