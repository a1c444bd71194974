package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/app"
	"github.com/traveltrucks/traveltrucks/internal/config"
	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/filters"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

type listClient interface {
	ListCampers(ctx context.Context, opts app.ListOptions, w io.Writer) error
}

const listCommandLong = `List campers from the catalog, optionally filtered.

USAGE:
    traveltrucks list [OPTIONS]

OPTIONS:
    --location <text>       Match campers whose location contains text
    --type <form>           Vehicle type: panelTruck, fullyIntegrated, alcove
    --transmission <value>  Transmission, e.g. automatic
    --equipment <flags>     Comma separated equipment: AC,kitchen,TV,bathroom,...
    --patch <json>          Filter patch as JSON, applied before the flags above
    --favorites             Show favorite campers only
    --page <n>              Number of pages to show (default 1)
    --page-size <n>         Campers per page (default from config page_size)
    --format <format>       Output format: simple (default), table, json
    -h, --help              Show this help`

type listFlags struct {
	location     string
	vehicleType  string
	transmission string
	equipment    []string
	patch        string
	favorites    bool
	pages        int
	pageSize     int
	format       string
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var flags listFlags

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List campers with filters",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(cmd, flags)
			if err != nil {
				return err
			}
			formatterType, err := parseFormat(flags.format)
			if err != nil {
				return err
			}
			if flags.pages < 1 {
				return fmt.Errorf("invalid page: %d (must be at least 1)", flags.pages)
			}
			pageSize := flags.pageSize
			if pageSize <= 0 {
				pageSize = config.GetInt("page_size", domain.DefaultPageSize)
			}

			opts := app.ListOptions{
				Patch:         patch,
				FavoritesOnly: flags.favorites,
				Pages:         flags.pages,
				PageSize:      pageSize,
				Format:        formatterType,
				TableStyle:    config.Get("table_format", "default"),
			}
			return client.ListCampers(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := listCmd.Flags()
	f.StringVar(&flags.location, "location", "", "Match campers whose location contains text")
	f.StringVar(&flags.vehicleType, "type", "", "Vehicle type: panelTruck, fullyIntegrated, alcove")
	f.StringVar(&flags.transmission, "transmission", "", "Transmission, e.g. automatic")
	f.StringSliceVar(&flags.equipment, "equipment", nil, "Comma separated equipment flags")
	f.StringVar(&flags.patch, "patch", "", "Filter patch as JSON")
	f.BoolVar(&flags.favorites, "favorites", false, "Show favorite campers only")
	f.IntVar(&flags.pages, "page", 1, "Number of pages to show")
	f.IntVar(&flags.pageSize, "page-size", 0, "Campers per page")
	f.StringVar(&flags.format, "format", "simple", "Output format: simple, table, json")

	return listCmd
}

// buildPatch merges --patch with the individual filter flags. Flags that
// were set explicitly win over the JSON patch.
func buildPatch(cmd *cobra.Command, flags listFlags) (*filters.Patch, error) {
	patch, err := filters.ParsePatch([]byte(flags.patch))
	if err != nil {
		return nil, err
	}
	if patch == nil {
		patch = &filters.Patch{}
	}

	if cmd.Flags().Changed("location") {
		patch.Location = filters.String(flags.location)
	}
	if cmd.Flags().Changed("type") {
		if flags.vehicleType != "" && !isVehicleForm(flags.vehicleType) {
			return nil, fmt.Errorf("invalid type: %s (must be %s)", flags.vehicleType, strings.Join(domain.VehicleForms, ", "))
		}
		patch.VehicleType = filters.String(flags.vehicleType)
	}
	if cmd.Flags().Changed("transmission") {
		patch.Transmission = filters.String(strings.ToLower(flags.transmission))
	}
	if len(flags.equipment) > 0 {
		if patch.Equipment == nil {
			patch.Equipment = make(map[string]bool, len(flags.equipment))
		}
		for _, name := range flags.equipment {
			flag, ok := domain.LookupEquipment(name)
			if !ok {
				return nil, fmt.Errorf("unknown equipment: %s (must be one of %s)", name, strings.Join(domain.EquipmentFlags, ", "))
			}
			patch.Equipment[flag] = true
		}
	}
	return patch, nil
}

func isVehicleForm(form string) bool {
	for _, f := range domain.VehicleForms {
		if f == form {
			return true
		}
	}
	return false
}

// parseFormat validates an output format name.
func parseFormat(name string) (format.FormatterType, error) {
	switch t := format.FormatterType(strings.ToLower(name)); t {
	case format.FormatterTypeSimple, format.FormatterTypeTable, format.FormatterTypeJSON:
		return t, nil
	case "":
		return format.FormatterTypeSimple, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be simple, table, json)", name)
	}
}

// listCmd represents the list command
var listCmd = NewListCmd(client)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
