package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/system76/power-management-service/db"
	"gitlab.com/system76/power-management-service/models"
	"gitlab.com/system76/power-management-service/power"
)

// GetProfileHandler godoc
//
//	@Summary		Retrieve last applied power profile
//	@Description	Report the most recently applied power profile; balanced when none has been applied yet.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/profile [get]
func GetProfileHandler(c *gin.Context) {
	profile := power.ProfileBalanced

	if db.DB != nil {
		var record models.PowerProfileRecord
		if result := db.DB.Last(&record); result.Error == nil && record.Profile != "" {
			profile = record.Profile
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetProfileHandler godoc
//
//	@Summary		Apply a power profile
//	@Description	Tune the CPU frequency range and governor for the requested profile.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/profile [post]
func SetProfileHandler(c *gin.Context) {
	if c.Request.ContentLength == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewEmptyBodyProblem())
		return
	}

	var request struct {
		Profile string `json:"profile" binding:"required,oneof=performance balanced battery"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewValidationProblem(err))
		return
	}

	hwLock.Lock()
	defer hwLock.Unlock()

	err := power.Apply(request.Profile)
	recordEvent("set-profile", request.Profile, err == nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordProfile(request.Profile)
	c.JSON(http.StatusOK, gin.H{"profile": request.Profile})
}

func recordProfile(profile string) {
	if db.DB == nil {
		return
	}

	record := models.PowerProfileRecord{Profile: profile}
	if result := db.DB.Create(&record); result.Error != nil {
		zlog.Sugar().Warnf("failed to record power profile: %v", result.Error)
	}
}
