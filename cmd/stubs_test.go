package cmd

import (
	"bytes"

	"github.com/gin-gonic/gin"
	gonet "github.com/shirou/gopsutil/net"
	"github.com/spf13/cobra"

	"gitlab.com/system76/power-management-service/internal/config"
)

type stubNetwork struct {
	conns []gonet.ConnectionStat
	err   error
}

func (s stubNetwork) GetConnections(kind string) ([]gonet.ConnectionStat, error) {
	return s.conns, s.err
}

// listeningNetwork reports a daemon listening on the configured REST port.
func listeningNetwork() stubNetwork {
	return stubNetwork{conns: []gonet.ConnectionStat{{
		Status: "LISTEN",
		Laddr:  gonet.Addr{IP: "127.0.0.1", Port: uint32(config.GetConfig().Rest.Port)},
	}}}
}

type stubRequest struct {
	method   string
	endpoint string
	body     []byte
}

type stubUtility struct {
	responses map[string][]byte
	requests  []stubRequest
	err       error
}

func (s *stubUtility) ResponseBody(c *gin.Context, method, endpoint, query string, body []byte) ([]byte, error) {
	s.requests = append(s.requests, stubRequest{method: method, endpoint: endpoint, body: body})
	if s.err != nil {
		return nil, s.err
	}
	if response, ok := s.responses[method+" "+endpoint]; ok {
		return response, nil
	}
	return []byte(`{}`), nil
}

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}
