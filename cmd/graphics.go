package cmd

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/cmd/backend"
)

func NewGraphicsCmd(net backend.NetworkManager, utilsService backend.Utility) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "graphics [intel|nvidia]",
		Short:             "Query or set the graphics mode",
		Long:              `Without an argument, report which driver family is currently active. With a vendor argument, persist that vendor as the boot-time default.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgs:         []string{"intel", "nvidia"},
		PersistentPreRunE: isDaemonRunning(net),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				body, err := utilsService.ResponseBody(nil, "GET", "/api/v1/graphics", "", nil)
				if err != nil {
					return fmt.Errorf("unable to get /graphics response body: %w", err)
				}
				if err := apiError(body); err != nil {
					return err
				}

				vendor, err := jsonparser.GetString(body, "vendor")
				if err != nil {
					return fmt.Errorf("failed to get vendor from json response: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), vendor)
				return nil
			}

			payload := []byte(fmt.Sprintf(`{"vendor": %q}`, args[0]))
			body, err := utilsService.ResponseBody(nil, "POST", "/api/v1/graphics", "", payload)
			if err != nil {
				return fmt.Errorf("unable to get /graphics response body: %w", err)
			}
			if err := apiError(body); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Graphics mode set to %s. Reboot for the change to take effect.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(NewGraphicsPowerCmd(utilsService))
	cmd.AddCommand(NewGraphicsSwitchableCmd(utilsService))
	return cmd
}

func NewGraphicsPowerCmd(utilsService backend.Utility) *cobra.Command {
	return &cobra.Command{
		Use:       "power [on|off|auto]",
		Short:     "Query or set the discrete GPU power state",
		Long:      `Without an argument, report whether the discrete GPU is attached to the bus. With on/off, power it on or off. With auto, reconcile power with the active driver.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "auto"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				body, err := utilsService.ResponseBody(nil, "GET", "/api/v1/graphics/power", "", nil)
				if err != nil {
					return fmt.Errorf("unable to get /graphics/power response body: %w", err)
				}
				if err := apiError(body); err != nil {
					return err
				}

				power, err := jsonparser.GetBoolean(body, "power")
				if err != nil {
					return fmt.Errorf("failed to get power state from json response: %w", err)
				}

				if power {
					fmt.Fprintln(cmd.OutOrStdout(), "on (discrete graphics attached)")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "off (discrete graphics removed)")
				}
				return nil
			}

			var body []byte
			var err error
			switch args[0] {
			case "on":
				body, err = utilsService.ResponseBody(nil, "POST", "/api/v1/graphics/power", "", []byte(`{"power": true}`))
			case "off":
				body, err = utilsService.ResponseBody(nil, "POST", "/api/v1/graphics/power", "", []byte(`{"power": false}`))
			case "auto":
				body, err = utilsService.ResponseBody(nil, "POST", "/api/v1/graphics/power/auto", "", nil)
			default:
				return fmt.Errorf("invalid power state: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("unable to get /graphics/power response body: %w", err)
			}
			if err := apiError(body); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Graphics power: %s\n", args[0])
			return nil
		},
	}
}

func NewGraphicsSwitchableCmd(utilsService backend.Utility) *cobra.Command {
	return &cobra.Command{
		Use:   "switchable",
		Short: "Report whether the machine has switchable graphics",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := utilsService.ResponseBody(nil, "GET", "/api/v1/graphics/switchable", "", nil)
			if err != nil {
				return fmt.Errorf("unable to get /graphics/switchable response body: %w", err)
			}
			if err := apiError(body); err != nil {
				return err
			}

			switchable, err := jsonparser.GetBoolean(body, "switchable")
			if err != nil {
				return fmt.Errorf("failed to get switchable flag from json response: %w", err)
			}

			if switchable {
				fmt.Fprintln(cmd.OutOrStdout(), "switchable")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not switchable")
			}
			return nil
		},
	}
}
