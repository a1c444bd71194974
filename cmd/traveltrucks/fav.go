package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

type favoritesClient interface {
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	ListFavorites(ctx context.Context, formatterType format.FormatterType, w io.Writer) error
	ClearFavorites(ctx context.Context) error
}

// NewFavCmd creates the fav command group with explicit dependencies.
func NewFavCmd(client favoritesClient) *cobra.Command {
	if client == nil {
		panic("NewFavCmd: client dependency cannot be nil")
	}

	favCmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite campers",
		Long: `Manage favorite campers. Favorites are kept in the configured storage
backend (sqlite by default).`,
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a camper from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.ToggleFavorite(cmd.Context(), args[0])
			return err
		},
	}

	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite campers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := parseFormat(listFormat)
			if err != nil {
				return err
			}
			return client.ListFavorites(cmd.Context(), formatterType, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVar(&listFormat, "format", "simple", "Output format: simple, table, json")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.ClearFavorites(cmd.Context())
		},
	}

	favCmd.AddCommand(toggleCmd, listCmd, clearCmd)
	return favCmd
}

// favCmd represents the fav command
var favCmd = NewFavCmd(client)

func init() {
	cmd.RootCmd.AddCommand(favCmd)
}
