// Package cmd holds the root command shared by the traveltrucks binary.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/config"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/version"
)

var (
	configPath string
	debugFlag  bool
	quietFlag  bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "traveltrucks",
	Short: "Browse, filter and favorite rental campers.",
	Long: `Browse, filter and favorite rental campers from the TravelTrucks catalog.

Configuration is read from {config_dir}/config.toml, an optional .env file
and TRAVELTRUCKS_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return Setup() },
}

// Execute runs the root command and shuts the logger down afterwards.
func Execute() error {
	defer func() {
		_ = logging.ShutdownGlobal()
	}()
	return RootCmd.Execute()
}

// Setup loads configuration, applies the global flags and starts logging.
func Setup() error {
	if configPath != "" {
		if err := os.Setenv(config.EnvPrefix+"CONFIG_PATH", configPath); err != nil {
			return err
		}
	}
	config.Load()
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning("logging disabled: " + err.Error())
	}
	logging.Debug("configuration loaded", "config_dir", config.Get("config_dir", ""), "backend", config.Get("favorites_backend", ""))
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")
}
