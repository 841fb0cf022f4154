package app

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/command"
	"github.com/dshills/lightremote/internal/config"
	"github.com/dshills/lightremote/internal/console"
	"github.com/dshills/lightremote/internal/event"
	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/logging"
	"github.com/dshills/lightremote/internal/remote"
	"github.com/dshills/lightremote/internal/script"
	"github.com/dshills/lightremote/internal/tui"
)

// Names under which the light commands are registered.
const (
	CommandOn  = "on"
	CommandOff = "off"
)

// App is the client: it owns the receiver, the commands and the remote.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	bus      *event.Bus
	sink     *console.Sink
	light    *light.Light
	registry *command.Registry
	remote   *remote.RemoteControl
}

// New builds the application. Output lines go to out.
func New(cfg *config.Config, logger *zap.Logger, out io.Writer) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrNop(logger)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		bus:      event.NewBus(event.WithLogger(logger.Named("event"))),
		registry: command.NewRegistry(),
	}

	a.sink = console.NewSink(out, console.Messages{
		On:            cfg.Messages.On,
		Off:           cfg.Messages.Off,
		NothingToUndo: cfg.Messages.NothingToUndo,
	})
	if err := a.sink.Attach(a.bus); err != nil {
		return nil, NewOperationError("init", "console", err)
	}

	a.light = light.New(cfg.Light.Name, a.bus, light.WithLogger(logger.Named("light")))

	for name, cmd := range map[string]command.Command{
		CommandOn:  command.NewLightOn(a.light),
		CommandOff: command.NewLightOff(a.light),
	} {
		if err := a.registry.Register(name, cmd); err != nil {
			return nil, NewOperationError("init", "commands", err)
		}
	}

	a.remote = remote.New(
		remote.WithPublisher(a.bus),
		remote.WithLogger(logger.Named("remote")),
		remote.WithMaxHistory(cfg.History.MaxEntries),
	)

	return a, nil
}

// Light returns the receiver.
func (a *App) Light() *light.Light { return a.light }

// Remote returns the invoker.
func (a *App) Remote() *remote.RemoteControl { return a.remote }

// Registry returns the named commands.
func (a *App) Registry() *command.Registry { return a.registry }

// Bus returns the event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// RunDemo runs the canonical sequence: select on, press, undo; select off,
// press, undo.
func (a *App) RunDemo(ctx context.Context) error {
	for _, name := range []string{CommandOn, CommandOff} {
		if err := ctx.Err(); err != nil {
			return NewOperationError("demo", name, err)
		}

		cmd, err := a.registry.Get(name)
		if err != nil {
			return NewOperationError("demo", name, err)
		}

		a.remote.SetCommand(cmd)
		if err := a.remote.PressButton(); err != nil {
			return NewOperationError("demo", name, err)
		}
		if _, err := a.remote.PressUndo(); err != nil {
			return NewOperationError("demo", name, err)
		}
	}
	return nil
}

// RunScript runs the Lua driver script at path, or the configured script
// when path is empty.
func (a *App) RunScript(ctx context.Context, path string, out io.Writer) error {
	if path == "" {
		path = a.cfg.Script
	}
	if path == "" {
		return ErrNoScript
	}

	runner := script.NewRunner(a.remote, a.registry, a.light,
		script.WithOutput(out),
		script.WithLogger(a.logger.Named("script")),
	)
	if err := runner.RunFile(ctx, path); err != nil {
		return NewOperationError("script", path, err)
	}
	return nil
}

// RunInteractive runs the terminal remote on screen until the user quits.
func (a *App) RunInteractive(ctx context.Context, screen tcell.Screen) error {
	ui := tui.New(screen, tui.Deps{
		Remote:   a.remote,
		Registry: a.registry,
		Light:    a.light,
		LastLine: a.sink.Last,
	}, a.logger)

	if err := ui.Run(ctx); err != nil {
		return NewOperationError("interactive", "", err)
	}
	return nil
}

// Close detaches the console sink.
func (a *App) Close() {
	a.sink.Detach()
}
