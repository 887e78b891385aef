package api

import (
	"gitlab.com/system76/power-management-service/internal/logger"
)

var zlog *logger.Logger

func init() {
	zlog = logger.New("api")
}
