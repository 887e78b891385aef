package cmd

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/cmd/backend"
)

func NewProfileCmd(net backend.NetworkManager, utilsService backend.Utility) *cobra.Command {
	return &cobra.Command{
		Use:               "profile [performance|balanced|battery]",
		Short:             "Query or apply a power profile",
		Long:              `Without an argument, report the last applied power profile. With a profile argument, tune the CPU frequency range and governor accordingly.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgs:         []string{"performance", "balanced", "battery"},
		PersistentPreRunE: isDaemonRunning(net),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				body, err := utilsService.ResponseBody(nil, "GET", "/api/v1/profile", "", nil)
				if err != nil {
					return fmt.Errorf("unable to get /profile response body: %w", err)
				}
				if err := apiError(body); err != nil {
					return err
				}

				profile, err := jsonparser.GetString(body, "profile")
				if err != nil {
					return fmt.Errorf("failed to get profile from json response: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), profile)
				return nil
			}

			payload := []byte(fmt.Sprintf(`{"profile": %q}`, args[0]))
			body, err := utilsService.ResponseBody(nil, "POST", "/api/v1/profile", "", payload)
			if err != nil {
				return fmt.Errorf("unable to get /profile response body: %w", err)
			}
			if err := apiError(body); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Power profile set to %s\n", args[0])
			return nil
		},
	}
}
