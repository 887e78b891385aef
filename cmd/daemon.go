package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/daemon"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the power management daemon",
	Long:  `Runs the privileged daemon that owns the graphics switching and power profile operations. Requires root.`,

	Run: func(cmd *cobra.Command, args []string) {
		daemon.Run()
	},
}
