package power

import (
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBacklight(fs afero.Fs, dir, name, brightnessAttr string, brightness, max int) {
	base := dir + "/" + name
	afero.WriteFile(fs, base+"/"+brightnessAttr, []byte(strconv.Itoa(brightness)+"\n"), 0444)
	afero.WriteFile(fs, base+"/max_brightness", []byte(strconv.Itoa(max)+"\n"), 0444)
}

func TestBacklights(t *testing.T) {
	fs := setupPower(t)
	seedBacklight(fs, "/sys/class/backlight", "intel_backlight", "actual_brightness", 48000, 96000)

	backlights, err := Backlights()
	require.NoError(t, err)
	require.Len(t, backlights, 1)
	assert.Equal(t, Backlight{Name: "intel_backlight", Brightness: 48000, MaxBrightness: 96000}, backlights[0])
}

func TestBacklightsSkipsUnreadableDevices(t *testing.T) {
	fs := setupPower(t)
	seedBacklight(fs, "/sys/class/backlight", "intel_backlight", "actual_brightness", 48000, 96000)
	afero.WriteFile(fs, "/sys/class/backlight/acpi_video0/max_brightness", []byte("100\n"), 0444)

	backlights, err := Backlights()
	require.NoError(t, err)
	require.Len(t, backlights, 1)
	assert.Equal(t, "intel_backlight", backlights[0].Name)
}

func TestKeyboardBacklights(t *testing.T) {
	fs := setupPower(t)
	seedBacklight(fs, "/sys/class/leds", "system76_acpi::kbd_backlight", "brightness", 127, 255)
	seedBacklight(fs, "/sys/class/leds", "input3::capslock", "brightness", 0, 1)

	backlights, err := KeyboardBacklights()
	require.NoError(t, err)
	require.Len(t, backlights, 1)
	assert.Equal(t, "system76_acpi::kbd_backlight", backlights[0].Name)
	assert.Equal(t, 127, backlights[0].Brightness)
	assert.Equal(t, 255, backlights[0].MaxBrightness)
}

func TestBacklightsWithoutClassDir(t *testing.T) {
	setupPower(t)

	_, err := Backlights()
	assert.Error(t, err)
}
