package backend

import (
	"github.com/gin-gonic/gin"

	"gitlab.com/system76/power-management-service/utils"
)

type Utils struct{}

func (u *Utils) ResponseBody(c *gin.Context, method, endpoint, query string, body []byte) ([]byte, error) {
	return utils.ResponseBody(c, method, endpoint, query, body)
}
