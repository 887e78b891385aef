package daemon

import (
	"fmt"

	"gitlab.com/system76/power-management-service/api"
	"gitlab.com/system76/power-management-service/db"
	"gitlab.com/system76/power-management-service/internal/config"
)

// Run starts the privileged daemon: load configuration, open the database
// and serve the REST API until the process is stopped.
func Run() {
	config.LoadConfig()
	db.ConnectDatabase()

	startServer()
}

func startServer() {
	router := api.SetupRouter()
	address := fmt.Sprintf("127.0.0.1:%d", config.GetConfig().Rest.Port)

	zlog.Sugar().Infof("listening on %s", address)
	if err := router.Run(address); err != nil {
		zlog.Sugar().Fatalf("rest server exited: %v", err)
	}
}
