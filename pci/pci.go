package pci

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/config"
)

// FS is the filesystem all sysfs access goes through. Tests point it at an
// in-memory filesystem carrying a synthetic device tree.
var FS afero.Fs = afero.NewOsFs()

// ErrNoDriver is reported by Device.Driver when no driver is bound. It is
// not a failure: an unbound device is a legal state.
var ErrNoDriver = errors.New("no driver bound")

func busPath() string {
	return filepath.Join(config.GetConfig().Graphics.SysfsRoot, "bus/pci")
}

func devicesPath() string {
	return filepath.Join(busPath(), "devices")
}

// Device is one PCI function visible under the bus device directory,
// addressed by its bus/slot/function id (e.g. "0000:01:00.0"). Existence is
// never cached: the kernel can remove the node at any time.
type Device struct {
	id   string
	path string
}

func NewDevice(id string) *Device {
	return &Device{id: id, path: filepath.Join(devicesPath(), id)}
}

// All enumerates every PCI device currently visible to the kernel.
func All() ([]*Device, error) {
	entries, err := afero.ReadDir(FS, devicesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate PCI devices: %w", err)
	}

	devices := make([]*Device, 0, len(entries))
	for _, entry := range entries {
		devices = append(devices, NewDevice(entry.Name()))
	}

	return devices, nil
}

func (d *Device) ID() string {
	return d.id
}

// Exists reports whether the device node is currently present.
func (d *Device) Exists() bool {
	_, err := FS.Stat(d.path)
	return err == nil
}

// Class reads the 24-bit class code; the top byte is the base class.
func (d *Device) Class() (uint32, error) {
	value, err := d.readHexAttr("class")
	return uint32(value), err
}

// Vendor reads the 16-bit vendor id.
func (d *Device) Vendor() (uint16, error) {
	value, err := d.readHexAttr("vendor")
	return uint16(value), err
}

// Driver reports the name of the bound driver, or ErrNoDriver when the
// device is unbound. The binding is read from the uevent attribute. Only a
// missing uevent means unbound; any other read failure is a real error, and
// callers must not treat the device as release-safe.
func (d *Device) Driver() (string, error) {
	file, err := FS.Open(filepath.Join(d.path, "uevent"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", d.id, ErrNoDriver)
		}
		return "", fmt.Errorf("failed to read uevent of %s: %w", d.id, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if driver, found := strings.CutPrefix(line, "DRIVER="); found && driver != "" {
			return driver, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read uevent of %s: %w", d.id, err)
	}

	return "", fmt.Errorf("%s: %w", d.id, ErrNoDriver)
}

// Unbind detaches the named driver from this function by writing the device
// id to the driver's unbind control file.
func (d *Device) Unbind(driver string) error {
	controlPath := filepath.Join(busPath(), "drivers", driver, "unbind")
	return afero.WriteFile(FS, controlPath, []byte(d.id), 0200)
}

// Remove asks the kernel to delete this function's device node. The node is
// gone until the next bus rescan re-creates it.
func (d *Device) Remove() error {
	return afero.WriteFile(FS, filepath.Join(d.path, "remove"), []byte("1"), 0200)
}

func (d *Device) readHexAttr(attr string) (uint64, error) {
	data, err := afero.ReadFile(FS, filepath.Join(d.path, attr))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s of %s: %w", attr, d.id, err)
	}

	text := strings.TrimPrefix(strings.TrimSpace(string(data)), "0x")
	value, err := strconv.ParseUint(text, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s of %s: %w", attr, d.id, err)
	}

	return value, nil
}

// Bus is the PCI bus controller; its single operation asks the kernel to
// re-enumerate the bus, recreating nodes for present-but-removed hardware.
type Bus struct {
	path string
}

func NewBus() *Bus {
	return &Bus{path: busPath()}
}

func (b *Bus) Rescan() error {
	return afero.WriteFile(FS, filepath.Join(b.path, "rescan"), []byte("1"), 0200)
}
