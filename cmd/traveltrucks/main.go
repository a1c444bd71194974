package main

import (
	"os"

	"github.com/traveltrucks/traveltrucks/cmd"
	"github.com/traveltrucks/traveltrucks/internal/colors"
)

func main() {
	err := cmd.Execute()
	if closeErr := closeRuntime(); closeErr != nil {
		colors.Warning("failed to close favorites storage: " + closeErr.Error())
	}
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
