// Package notice routes user-facing messages to the console or the TUI.
package notice

import (
	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

// ColorOutput is the console writer used by Console.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// Console reports messages on stdout/stderr.
type Console struct {
	out ColorOutput
}

var _ ports.Reporter = (*Console)(nil)

// NewConsole returns a Console writing through out.
func NewConsole(out ColorOutput) *Console {
	return &Console{out: out}
}

// NewDefaultConsole returns a Console backed by the colors package.
func NewDefaultConsole() *Console {
	return NewConsole(colorsOutput{})
}

func (c *Console) Error(msg string)   { c.out.Error(msg) }
func (c *Console) Warning(msg string) { c.out.Warning(msg) }
func (c *Console) Info(msg string)    { c.out.Info(msg) }
func (c *Console) Success(msg string) { c.out.Success(msg) }
