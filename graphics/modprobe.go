package graphics

import (
	"os"

	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/config"
)

// FS is the filesystem the modprobe configuration is written through; tests
// swap in an in-memory filesystem.
var FS afero.Fs = afero.NewOsFs()

var modprobeNvidia = []byte(`# Automatically generated by system76-power
`)

var modprobeIntel = []byte(`# Automatically generated by system76-power
blacklist i2c_nvidia_gpu
blacklist nouveau
blacklist nvidia
blacklist nvidia-drm
blacklist nvidia-modeset
alias i2c_nvidia_gpu off
alias nouveau off
alias nvidia off
alias nvidia-drm off
alias nvidia-modeset off
`)

// writeModprobe replaces the generated modprobe file wholesale with the
// template for the target vendor and syncs it to disk. Selecting nvidia
// writes the header-only marker; anything else blacklists the whole
// NVIDIA/Nouveau module family so the integrated GPU becomes the default.
func writeModprobe(vendor string) error {
	path := config.GetConfig().Graphics.ModprobePath
	zlog.Sugar().Infof("creating %s", path)

	file, err := FS.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return &Error{Kind: ErrModprobeFileOpen, Err: err}
	}
	defer file.Close()

	content := modprobeIntel
	if vendor == "nvidia" {
		content = modprobeNvidia
	}

	if _, err := file.Write(content); err != nil {
		return &Error{Kind: ErrModprobeFileWrite, Err: err}
	}
	if err := file.Sync(); err != nil {
		return &Error{Kind: ErrModprobeFileWrite, Err: err}
	}

	return nil
}
