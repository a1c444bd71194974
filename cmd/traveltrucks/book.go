package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/booking"
)

type bookClient interface {
	Book(ctx context.Context, req booking.Request) (string, error)
}

// NewBookCmd creates the book command with explicit dependencies.
func NewBookCmd(client bookClient) *cobra.Command {
	if client == nil {
		panic("NewBookCmd: client dependency cannot be nil")
	}

	var req booking.Request

	bookCmd := &cobra.Command{
		Use:   "book <id>",
		Short: "Send a booking request for a camper",
		Long: `Validate a booking request for a camper and print the confirmation.

USAGE:
    traveltrucks book <id> --name <name> --email <email> --date YYYY-MM-DD [--comment <text>]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := req
			r.ListingID = args[0]
			_, err := client.Book(cmd.Context(), r)
			return err
		},
	}

	bookCmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	bookCmd.Flags().StringVar(&req.Email, "email", "", "Your email address")
	bookCmd.Flags().StringVar(&req.Date, "date", "", "Booking date (YYYY-MM-DD)")
	bookCmd.Flags().StringVar(&req.Comment, "comment", "", "Optional comment")

	return bookCmd
}

// bookCmd represents the book command
var bookCmd = NewBookCmd(client)

func init() {
	cmd.RootCmd.AddCommand(bookCmd)
}
