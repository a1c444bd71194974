package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

type showClient interface {
	ShowCamper(ctx context.Context, id string, formatterType format.FormatterType, w io.Writer) error
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var showFormat string

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one camper",
		Long: `Show the full details of one camper: description, features, vehicle
details and reviews.

USAGE:
    traveltrucks show <id> [--format simple|table|json]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := parseFormat(showFormat)
			if err != nil {
				return err
			}
			return client.ShowCamper(cmd.Context(), args[0], formatterType, cmd.OutOrStdout())
		},
	}
	showCmd.Flags().StringVar(&showFormat, "format", "simple", "Output format: simple, table, json")

	return showCmd
}

// showCmd represents the show command
var showCmd = NewShowCmd(client)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
