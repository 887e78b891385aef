package power

import (
	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/logger"
)

var zlog *logger.Logger

// FS is the filesystem all cpufreq and backlight access goes through; tests
// swap in an in-memory filesystem.
var FS afero.Fs = afero.NewOsFs()

func init() {
	zlog = logger.New("power")
}
