package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/system76/power-management-service/graphics"
	"gitlab.com/system76/power-management-service/power"
)

// StatusHandler godoc
//
//	@Summary		Retrieve daemon status
//	@Description	Report the graphics vendor/power summary and the known backlights in one response. Every field is best effort.
//	@Tags			status
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/status [get]
func StatusHandler(c *gin.Context) {
	status := gin.H{}

	g, err := graphics.New()
	if err != nil {
		zlog.Sugar().Warnf("status: graphics discovery failed: %v", err)
	} else {
		gfx := gin.H{"switchable": g.CanSwitch()}
		if vendor, err := g.Vendor(); err == nil {
			gfx["vendor"] = vendor
		}
		if powerState, err := g.Power(); err == nil {
			gfx["power"] = powerState
		}
		status["graphics"] = gfx
	}

	if backlights, err := power.Backlights(); err == nil {
		status["backlights"] = backlights
	}
	if keyboards, err := power.KeyboardBacklights(); err == nil {
		status["keyboard_backlights"] = keyboards
	}

	c.JSON(http.StatusOK, status)
}
