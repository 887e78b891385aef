package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gitlab.com/system76/power-management-service/db"
	"gitlab.com/system76/power-management-service/graphics"
	"gitlab.com/system76/power-management-service/models"
)

// hwLock serializes every mutating graphics operation. The graphics core
// holds no lock of its own; two overlapping power-off sequences racing on
// the same PCI functions would corrupt kernel state.
var hwLock sync.Mutex

// GetGraphicsHandler godoc
//
//	@Summary		Retrieve active graphics vendor
//	@Description	Report which driver family is currently active (nvidia when the nvidia or nouveau module is loaded, intel otherwise).
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics [get]
func GetGraphicsHandler(c *gin.Context) {
	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	vendor, err := g.Vendor()
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// SetGraphicsHandler godoc
//
//	@Summary		Set boot-time graphics vendor
//	@Description	Persist the default driver for the next boot: regenerate the modprobe blacklist, toggle the fallback service and rebuild the initramfs.
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics [post]
func SetGraphicsHandler(c *gin.Context) {
	if c.Request.ContentLength == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewEmptyBodyProblem())
		return
	}

	var request struct {
		Vendor string `json:"vendor" binding:"required,oneof=intel nvidia"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewValidationProblem(err))
		return
	}

	hwLock.Lock()
	defer hwLock.Unlock()

	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = g.SetVendor(request.Vendor)
	recordEvent("set-graphics", request.Vendor, err == nil)
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	recordPreference(request.Vendor)
	c.JSON(http.StatusOK, gin.H{"vendor": request.Vendor})
}

// GetGraphicsPowerHandler godoc
//
//	@Summary		Retrieve discrete GPU power state
//	@Description	Report whether any NVIDIA device currently has a live PCI node.
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics/power [get]
func GetGraphicsPowerHandler(c *gin.Context) {
	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	power, err := g.Power()
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"power": power})
}

// SetGraphicsPowerHandler godoc
//
//	@Summary		Set discrete GPU power state
//	@Description	Power the discrete GPU on (bus rescan) or off (unbind then remove every NVIDIA device).
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics/power [post]
func SetGraphicsPowerHandler(c *gin.Context) {
	if c.Request.ContentLength == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewEmptyBodyProblem())
		return
	}

	var request struct {
		Power *bool `json:"power" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewValidationProblem(err))
		return
	}

	hwLock.Lock()
	defer hwLock.Unlock()

	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	detail := "off"
	if *request.Power {
		detail = "on"
	}

	err = g.SetPower(*request.Power)
	recordEvent("set-graphics-power", detail, err == nil)
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"power": *request.Power})
}

// AutoGraphicsPowerHandler godoc
//
//	@Summary		Reconcile discrete GPU power with the active driver
//	@Description	Power the discrete GPU on when the nvidia driver is active, off otherwise.
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics/power/auto [post]
func AutoGraphicsPowerHandler(c *gin.Context) {
	hwLock.Lock()
	defer hwLock.Unlock()

	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = g.AutoPower()
	recordEvent("auto-graphics-power", "", err == nil)
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	power, err := g.Power()
	if err != nil {
		c.AbortWithStatusJSON(graphicsStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"power": power})
}

// GetSwitchableHandler godoc
//
//	@Summary		Report switchable graphics support
//	@Description	True when the machine has both an Intel and an NVIDIA controller.
//	@Tags			graphics
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/graphics/switchable [get]
func GetSwitchableHandler(c *gin.Context) {
	g, err := graphics.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"switchable": g.CanSwitch()})
}

// recordEvent appends an audit row. The database never gates a hardware
// operation: failures are logged and dropped.
func recordEvent(operation, detail string, success bool) {
	if db.DB == nil {
		return
	}

	event := models.PowerEvent{
		EventID:   uuid.NewString(),
		Operation: operation,
		Detail:    detail,
		Success:   success,
	}
	if result := db.DB.Create(&event); result.Error != nil {
		zlog.Sugar().Warnf("failed to record %s event: %v", operation, result.Error)
	}
}

func recordPreference(vendor string) {
	if db.DB == nil {
		return
	}

	preference := models.GraphicsPreference{Vendor: vendor}
	if result := db.DB.Create(&preference); result.Error != nil {
		zlog.Sugar().Warnf("failed to record graphics preference: %v", result.Error)
	}
}
