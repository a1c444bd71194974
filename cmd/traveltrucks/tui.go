package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/app"
	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/config"
	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/tui"
)

type tuiClient interface {
	State(ctx context.Context) (*app.State, error)
}

// programRunner runs a bubbletea model. Tests replace it.
type programRunner func(m tea.Model) error

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient, run programRunner) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}
	if run == nil {
		run = runProgram
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the catalog interactively",
		Long: `Browse the catalog interactively.

KEY BINDINGS:
    j/k         Move down/up
    enter       Open camper details
    f           Toggle favorite
    /           Edit the location filter
    t           Cycle vehicle type
    m           Toggle automatic transmission
    1-9         Toggle equipment (AC, kitchen, TV, bathroom, radio,
                refrigerator, microwave, gas, water)
    a           Search with the edited filters
    x           Reset filters
    n           Load more campers
    v           Show favorites
    r           Reload
    esc         Back
    q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			state, err := client.State(ctx)
			if err != nil {
				return err
			}
			model := tui.NewModel(ctx, state, tui.Options{
				PageSize: config.GetInt("page_size", domain.DefaultPageSize),
			})
			if err := run(model); err != nil {
				colors.Error(fmt.Sprintf("Error running TUI: %v", err))
				return err
			}
			return nil
		},
	}
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(client, runProgram)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
