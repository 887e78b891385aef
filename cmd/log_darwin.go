//go:build darwin

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Gather daemon logs into a tarball",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Log collection on macOS is not supported.")
	},
}
