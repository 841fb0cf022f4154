package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/command"
	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/logging"
	"github.com/dshills/lightremote/internal/remote"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Runner executes driver scripts.
type Runner struct {
	remote   *remote.RemoteControl
	registry *command.Registry
	light    *light.Light

	out     io.Writer
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithTimeout sets the per-run time budget.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.OrNop(logger)
	}
}

// NewRunner creates a runner driving rc with the commands in reg.
func NewRunner(rc *remote.RemoteControl, reg *command.Registry, l *light.Light, opts ...Option) *Runner {
	r := &Runner{
		remote:   rc,
		registry: reg,
		light:    l,
		out:      os.Stdout,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile executes the script at path. Lua positions in errors use the
// file's base name.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.run(ctx, filepath.Base(path), data)
}

// RunString executes code under the given chunk name.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	return r.run(ctx, name, []byte(code))
}

func (r *Runner) run(ctx context.Context, name string, code []byte) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := newSandboxedState()
	defer L.Close()
	L.SetContext(ctx)

	// Macros defined by the script live only for this run.
	var defined []string
	defer func() {
		for _, name := range defined {
			r.registry.Unregister(name)
		}
	}()
	r.install(L, &defined)

	r.logger.Debug("running script", zap.String("script", name))
	start := time.Now()

	err := doWithRecovery(func() error {
		fn, err := L.Load(bytes.NewReader(code), name)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
		case errors.Is(ctx.Err(), context.Canceled):
			err = fmt.Errorf("script interrupted: %w", ctx.Err())
		}
		r.logger.Warn("script failed", zap.String("script", name), zap.Error(err))
		return &Error{Script: name, Err: err}
	}

	r.logger.Debug("script finished", zap.String("script", name), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// newSandboxedState opens only safe Lua standard libraries.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

func (r *Runner) install(L *lua.LState, defined *[]string) {
	L.SetGlobal("print", L.NewFunction(r.luaPrint))

	L.SetGlobal("remote", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"select":   r.luaSelect,
		"press":    r.luaPress,
		"undo":     r.luaUndo,
		"depth":    r.luaDepth,
		"selected": r.luaSelected,
		"commands": r.luaCommands,
		"define":   r.luaDefine(defined),
	}))

	L.SetGlobal("light", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"is_on": r.luaIsOn,
		"name":  r.luaName,
	}))
}

func (r *Runner) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

func (r *Runner) luaSelect(L *lua.LState) int {
	name := L.CheckString(1)
	cmd, err := r.registry.Get(name)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	r.remote.SetCommand(cmd)
	return 0
}

func (r *Runner) luaPress(L *lua.LState) int {
	if err := r.remote.PressButton(); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (r *Runner) luaUndo(L *lua.LState) int {
	undone, err := r.remote.PressUndo()
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LBool(undone))
	return 1
}

func (r *Runner) luaDepth(L *lua.LState) int {
	L.Push(lua.LNumber(r.remote.UndoCount()))
	return 1
}

func (r *Runner) luaSelected(L *lua.LState) int {
	cmd := r.remote.Selected()
	if cmd == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(cmd.Description()))
	return 1
}

func (r *Runner) luaCommands(L *lua.LState) int {
	tbl := L.NewTable()
	for _, name := range r.registry.Names() {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// luaDefine returns remote.define(name, cmd...), which registers a macro
// and records its name in defined.
func (r *Runner) luaDefine(defined *[]string) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		if r.registry.Has(name) {
			L.RaiseError("%v: %q", command.ErrCommandExists, name)
			return 0
		}

		macro := command.NewCompoundCommand(name)
		for i := 2; i <= L.GetTop(); i++ {
			cmd, err := r.registry.Get(L.CheckString(i))
			if err != nil {
				L.RaiseError("%v", err)
				return 0
			}
			macro.Add(cmd)
		}
		if macro.IsEmpty() {
			L.ArgError(2, "at least one command name expected")
			return 0
		}

		if err := r.registry.Register(name, macro); err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		*defined = append(*defined, name)
		return 0
	}
}

func (r *Runner) luaIsOn(L *lua.LState) int {
	L.Push(lua.LBool(r.light.IsOn()))
	return 1
}

func (r *Runner) luaName(L *lua.LState) int {
	L.Push(lua.LString(r.light.Name()))
	return 1
}
