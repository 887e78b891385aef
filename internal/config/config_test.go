package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()
	config := GetConfig()

	assert.Equal(t, "/etc/system76-power", config.General.DataDir)
	assert.Equal(t, 9878, config.Rest.Port)
	assert.Equal(t, "/sys", config.Graphics.SysfsRoot)
	assert.Equal(t, "/proc/modules", config.Graphics.ProcModules)
	assert.Equal(t, "/etc/modprobe.d/system76-power.conf", config.Graphics.ModprobePath)
	assert.Equal(t, "systemctl", config.Graphics.SystemctlCmd)
	assert.Equal(t, "update-initramfs", config.Graphics.InitramfsCmd)
	assert.Equal(t, "nvidia-fallback.service", config.Graphics.FallbackService)
}

func TestSetConfig(t *testing.T) {
	t.Cleanup(LoadConfig)

	SetConfig("rest.port", 4242)
	assert.Equal(t, 4242, GetConfig().Rest.Port)
}
