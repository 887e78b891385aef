package kernel

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/config"
)

// FS is the filesystem the module list is read through; tests swap in an
// in-memory filesystem.
var FS afero.Fs = afero.NewOsFs()

// Module is one loaded kernel module as listed by the kernel.
type Module struct {
	Name string
	Size int64
}

// Modules reads the set of currently loaded kernel modules. Each line of the
// module list starts with the module name followed by its size.
func Modules() ([]Module, error) {
	file, err := FS.Open(config.GetConfig().Graphics.ProcModules)
	if err != nil {
		return nil, fmt.Errorf("failed to open module list: %w", err)
	}
	defer file.Close()

	var modules []Module
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		size, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			size = 0
		}

		modules = append(modules, Module{Name: fields[0], Size: size})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read module list: %w", err)
	}

	return modules, nil
}
