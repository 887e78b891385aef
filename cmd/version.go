package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the power management service.
const Version = "1.0.2"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the power management service version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("System76 Power Management Service Version: %s\n", Version)
	},
}
