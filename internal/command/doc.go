// Package command defines the commands a remote control can invoke.
//
// A Command encapsulates an action on a receiver together with its inverse:
//
//	on := command.NewLightOn(livingRoom)
//	on.Execute() // livingRoom.On()
//	on.Undo()    // livingRoom.Off()
//
// Built-in commands:
//   - LightOnCommand: Execute turns the light on, Undo turns it off
//   - LightOffCommand: Execute turns the light off, Undo turns it on
//   - CompoundCommand: runs several commands as one undo unit
//
// A Registry maps names to commands so clients, scripts and the interactive
// remote can select commands by name.
package command
