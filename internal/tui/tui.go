// Package tui provides an interactive terminal remote control.
package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/command"
	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/logging"
	"github.com/dshills/lightremote/internal/remote"
)

// Help lists the key bindings.
const Help = "[o] on  [f] off  [enter] press  [u] undo  [q] quit"

// Deps are the components the interactive remote drives.
type Deps struct {
	Remote   *remote.RemoteControl
	Registry *command.Registry
	Light    *light.Light

	// LastLine returns the most recent output line. Optional.
	LastLine func() string
}

// Remote is an interactive remote control rendered on a tcell screen.
type Remote struct {
	screen tcell.Screen
	deps   Deps
	logger *zap.Logger

	mu     sync.Mutex
	status string
}

// New creates an interactive remote on screen.
func New(screen tcell.Screen, deps Deps, logger *zap.Logger) *Remote {
	return &Remote{
		screen: screen,
		deps:   deps,
		logger: logging.OrNop(logger).Named("tui"),
	}
}

// Init initializes the screen.
func (r *Remote) Init() error {
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	r.screen.HideCursor()
	return nil
}

// Fini restores the terminal.
func (r *Remote) Fini() {
	r.screen.Fini()
}

// Run initializes the screen, runs the event loop and restores the terminal.
func (r *Remote) Run(ctx context.Context) error {
	if err := r.Init(); err != nil {
		return err
	}
	defer r.Fini()
	return r.Loop(ctx)
}

// Loop processes screen events until the user quits or ctx is cancelled.
// The screen must already be initialized.
func (r *Remote) Loop(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		r.draw()

		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if quit := r.HandleKey(ev); quit {
				return nil
			}
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

// HandleKey applies one key press and reports whether the user quit.
func (r *Remote) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		r.press()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'o':
		r.selectCommand("on")
	case 'f':
		r.selectCommand("off")
	case ' ':
		r.press()
	case 'u':
		r.undo()
	}
	return false
}

// Status returns the status line.
func (r *Remote) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Remote) setStatus(format string, args ...any) {
	r.mu.Lock()
	r.status = fmt.Sprintf(format, args...)
	r.mu.Unlock()
}

func (r *Remote) selectCommand(name string) {
	cmd, err := r.deps.Registry.Get(name)
	if err != nil {
		r.logger.Warn("select failed", zap.String("command", name), zap.Error(err))
		r.setStatus("error: %v", err)
		return
	}
	r.deps.Remote.SetCommand(cmd)
	r.setStatus("selected %s", cmd.Description())
}

func (r *Remote) press() {
	if err := r.deps.Remote.PressButton(); err != nil {
		r.setStatus("error: %v", err)
		return
	}
	r.setStatus("pressed")
}

func (r *Remote) undo() {
	undone, err := r.deps.Remote.PressUndo()
	switch {
	case err != nil:
		r.setStatus("error: %v", err)
	case undone:
		r.setStatus("undone")
	default:
		r.setStatus("history empty")
	}
}

func (r *Remote) draw() {
	r.screen.Clear()

	state := "OFF"
	if r.deps.Light.IsOn() {
		state = "ON"
	}
	selected := "(none)"
	if cmd := r.deps.Remote.Selected(); cmd != nil {
		selected = cmd.Description()
	}
	last := ""
	if r.deps.LastLine != nil {
		last = r.deps.LastLine()
	}

	lines := []string{
		fmt.Sprintf("Light:    %s [%s]", r.deps.Light.Name(), state),
		fmt.Sprintf("Selected: %s", selected),
		fmt.Sprintf("History:  %d", r.deps.Remote.UndoCount()),
		fmt.Sprintf("Output:   %s", last),
		fmt.Sprintf("Status:   %s", r.Status()),
		"",
		Help,
	}

	lit := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for y, line := range lines {
		style := tcell.StyleDefault
		if y == 0 && state == "ON" {
			style = lit
		}
		r.putString(0, y, line, style)
	}
	r.screen.Show()
}

func (r *Remote) putString(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
