package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/cmd/backend"
)

var (
	networkService = &backend.Network{}
	utilsService   = &backend.Utils{}
)

var (
	graphicsCmd *cobra.Command
	profileCmd  *cobra.Command
	statusCmd   *cobra.Command
)

func init() {
	// initialize commands and sub-commands
	graphicsCmd = NewGraphicsCmd(networkService, utilsService)
	profileCmd = NewProfileCmd(networkService, utilsService)
	statusCmd = NewStatusCmd(networkService, utilsService)

	// initialize top level commands
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(graphicsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}
