package power

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/config"
)

// Backlight is a read-only view of one brightness device.
type Backlight struct {
	Name          string `json:"name"`
	Brightness    int    `json:"brightness"`
	MaxBrightness int    `json:"max_brightness"`
}

// Backlights enumerates the display backlights. Devices with unreadable
// attributes are skipped.
func Backlights() ([]Backlight, error) {
	return readBacklights(
		filepath.Join(config.GetConfig().Graphics.SysfsRoot, "class/backlight"),
		"actual_brightness",
		func(string) bool { return true },
	)
}

// KeyboardBacklights enumerates the keyboard backlight LEDs.
func KeyboardBacklights() ([]Backlight, error) {
	return readBacklights(
		filepath.Join(config.GetConfig().Graphics.SysfsRoot, "class/leds"),
		"brightness",
		func(name string) bool { return strings.Contains(name, "kbd_backlight") },
	)
}

func readBacklights(dir, brightnessAttr string, match func(string) bool) ([]Backlight, error) {
	entries, err := afero.ReadDir(FS, dir)
	if err != nil {
		return nil, err
	}

	backlights := make([]Backlight, 0, len(entries))
	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}

		brightness, okBrightness := readIntAttr(filepath.Join(dir, entry.Name(), brightnessAttr))
		maxBrightness, okMax := readIntAttr(filepath.Join(dir, entry.Name(), "max_brightness"))
		if !okBrightness || !okMax {
			zlog.Sugar().Warnf("%s: unreadable brightness, skipping", entry.Name())
			continue
		}

		backlights = append(backlights, Backlight{
			Name:          entry.Name(),
			Brightness:    brightness,
			MaxBrightness: maxBrightness,
		})
	}

	return backlights, nil
}

func readIntAttr(path string) (int, bool) {
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}

	return value, true
}
