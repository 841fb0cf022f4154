package command

import (
	"errors"
	"fmt"

	"github.com/dshills/lightremote/internal/light"
)

// Command represents an action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute() error

	// Undo reverses the command and returns an error if it fails.
	Undo() error

	// Description returns a human-readable description of the command.
	Description() string
}

// LightOnCommand turns a light on.
type LightOnCommand struct {
	light *light.Light
}

// NewLightOn creates a command bound to l for its whole lifetime.
func NewLightOn(l *light.Light) *LightOnCommand {
	return &LightOnCommand{light: l}
}

// Execute turns the light on.
func (c *LightOnCommand) Execute() error {
	c.light.On()
	return nil
}

// Undo turns the light off.
func (c *LightOnCommand) Undo() error {
	c.light.Off()
	return nil
}

// Description returns a human-readable description.
func (c *LightOnCommand) Description() string {
	return fmt.Sprintf("Turn on %s", c.light.Name())
}

// LightOffCommand turns a light off.
type LightOffCommand struct {
	light *light.Light
}

// NewLightOff creates a command bound to l for its whole lifetime.
func NewLightOff(l *light.Light) *LightOffCommand {
	return &LightOffCommand{light: l}
}

// Execute turns the light off.
func (c *LightOffCommand) Execute() error {
	c.light.Off()
	return nil
}

// Undo turns the light on.
func (c *LightOffCommand) Undo() error {
	c.light.On()
	return nil
}

// Description returns a human-readable description.
func (c *LightOffCommand) Description() string {
	return fmt.Sprintf("Turn off %s", c.light.Name())
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order. When a step fails the steps that
// already ran are undone; any failure during that rollback is joined to the
// returned error.
func (c *CompoundCommand) Execute() error {
	for i, cmd := range c.Commands {
		err := cmd.Execute()
		if err == nil {
			continue
		}
		err = fmt.Errorf("%s: step %d: %w", c.Description(), i+1, err)
		if rbErr := c.rollback(i); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

// rollback undoes the first n commands, newest first, continuing past
// failures.
func (c *CompoundCommand) rollback(n int) error {
	var errs []error
	for j := n - 1; j >= 0; j-- {
		if err := c.Commands[j].Undo(); err != nil {
			errs = append(errs, fmt.Errorf("rollback step %d: %w", j+1, err))
		}
	}
	return errors.Join(errs...)
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo() error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(); err != nil {
			return fmt.Errorf("undo %s: step %d: %w", c.Description(), i+1, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d commands", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
