// Package remote provides the invoker side of the command pattern.
//
// A RemoteControl holds one selected command and a history stack of the
// commands it has executed:
//
//	rc := remote.New(remote.WithPublisher(bus))
//	rc.SetCommand(command.NewLightOn(l))
//	rc.PressButton() // l.On(), pushed onto history
//	rc.PressUndo()   // pops and calls Undo: l.Off()
//
// Selection and history are independent: PressUndo always reverses the most
// recently executed command, whatever is currently selected. Undo removes the
// entry permanently; there is no redo.
package remote
