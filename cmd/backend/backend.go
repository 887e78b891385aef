package backend

import (
	"github.com/gin-gonic/gin"
	gonet "github.com/shirou/gopsutil/net"
)

// NetworkManager abstracts connection listing on local ports
type NetworkManager interface {
	GetConnections(kind string) ([]gonet.ConnectionStat, error)
}

// Utility abstracts helper functions under the utils package
type Utility interface {
	ResponseBody(c *gin.Context, method, endpoint, query string, body []byte) ([]byte, error)
}