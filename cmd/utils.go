package cmd

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/cmd/backend"
	"gitlab.com/system76/power-management-service/internal/config"
)

func listenDaemonPort(net backend.NetworkManager) (bool, error) {
	port := config.GetConfig().Rest.Port

	conns, err := net.GetConnections("all")
	if err != nil {
		return false, err
	}

	for _, conn := range conns {
		if conn.Status == "LISTEN" && uint32(port) == conn.Laddr.Port {
			return true, nil
		}
	}

	return false, nil
}

// isDaemonRunning is intended to be used as a PreRun hook and ensure that
// the daemon is running before command execution
func isDaemonRunning(net backend.NetworkManager) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		open, err := listenDaemonPort(net)
		if err != nil {
			return fmt.Errorf("unable to check the daemon port: %w", err)
		}

		if !open {
			return fmt.Errorf("looks like the daemon is not running... \n\nSee: systemctl status system76-power.service")
		}

		return nil
	}
}

// apiError surfaces the error field of a JSON response body, if present.
func apiError(body []byte) error {
	if message, err := jsonparser.GetString(body, "error"); err == nil && message != "" {
		return errors.New(message)
	}

	return nil
}
