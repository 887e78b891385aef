package cmd

import (
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/cmd/backend"
)

func NewStatusCmd(net backend.NetworkManager, utilsService backend.Utility) *cobra.Command {
	return &cobra.Command{
		Use:               "status",
		Short:             "Display graphics and backlight status",
		PersistentPreRunE: isDaemonRunning(net),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := utilsService.ResponseBody(nil, "GET", "/api/v1/status", "", nil)
			if err != nil {
				return fmt.Errorf("unable to get /status response body: %w", err)
			}
			if err := apiError(body); err != nil {
				return err
			}

			table := setupStatusTable()

			if vendor, err := jsonparser.GetString(body, "graphics", "vendor"); err == nil {
				table.Append([]string{"Graphics", "vendor", vendor})
			}
			if power, err := jsonparser.GetBoolean(body, "graphics", "power"); err == nil {
				table.Append([]string{"Graphics", "discrete power", fmt.Sprintf("%t", power)})
			}
			if switchable, err := jsonparser.GetBoolean(body, "graphics", "switchable"); err == nil {
				table.Append([]string{"Graphics", "switchable", fmt.Sprintf("%t", switchable)})
			}

			appendBacklights(table, body, "Backlight", "backlights")
			appendBacklights(table, body, "Keyboard", "keyboard_backlights")

			table.Render()
			return nil
		},
	}
}

func setupStatusTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	headers := []string{"Component", "Property", "Value"}
	table.SetHeader(headers)
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	table.SetAutoFormatHeaders(false)

	return table
}

func appendBacklights(table *tablewriter.Table, body []byte, component, key string) {
	jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		name, nameErr := jsonparser.GetString(value, "name")
		brightness, brightnessErr := jsonparser.GetInt(value, "brightness")
		maxBrightness, maxErr := jsonparser.GetInt(value, "max_brightness")
		if nameErr != nil || brightnessErr != nil || maxErr != nil {
			return
		}

		percent := int64(0)
		if maxBrightness > 0 {
			percent = brightness * 100 / maxBrightness
		}
		table.Append([]string{component, name, fmt.Sprintf("%d/%d = %d%%", brightness, maxBrightness, percent)})
	}, key)
}
