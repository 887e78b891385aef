package graphics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jaypipes/pcidb"

	"gitlab.com/system76/power-management-service/internal/config"
	"gitlab.com/system76/power-management-service/kernel"
	"gitlab.com/system76/power-management-service/pci"
)

const classDisplay = 0x03

const (
	vendorAMD    = 0x1002
	vendorNVIDIA = 0x10DE
	vendorIntel  = 0x8086
)

// Graphics owns the bus controller and the vendor-classified GPU lists.
// Classification happens once at construction; a new instance is built per
// management session to re-synchronize with the live bus. Mutating calls
// are not locked here and must be serialized by the caller.
type Graphics struct {
	Bus    *pci.Bus
	Amd    []*Device
	Intel  []*Device
	Nvidia []*Device
	Other  []*Device
}

// New rescans the PCI bus so freshly attached or detached hardware is
// visible, enumerates all devices and files every display-class controller
// into its vendor bucket together with its sibling functions.
func New() (*Graphics, error) {
	bus := pci.NewBus()

	zlog.Info("rescanning PCI bus")
	if err := bus.Rescan(); err != nil {
		return nil, fmt.Errorf("failed to rescan PCI bus: %w", err)
	}

	devs, err := pci.All()
	if err != nil {
		return nil, err
	}

	functions := func(parent *pci.Device) []*pci.Device {
		var functions []*pci.Device
		parentSlot := slotOf(parent.ID())
		for _, fn := range devs {
			if slotOf(fn.ID()) == parentSlot {
				zlog.Sugar().Infof("%s: function for %s", fn.ID(), parent.ID())
				functions = append(functions, fn)
			}
		}
		return functions
	}

	graphics := &Graphics{Bus: bus}
	for _, dev := range devs {
		class, err := dev.Class()
		if err != nil {
			zlog.Sugar().Warnf("%s: unreadable class, skipping: %v", dev.ID(), err)
			continue
		}
		if (class>>16)&0xFF != classDisplay {
			continue
		}

		vendor, err := dev.Vendor()
		if err != nil {
			zlog.Sugar().Warnf("%s: unreadable vendor, skipping: %v", dev.ID(), err)
			continue
		}

		device := NewDevice(dev.ID(), functions(dev))
		switch vendor {
		case vendorAMD:
			zlog.Sugar().Infof("%s: AMD graphics", dev.ID())
			graphics.Amd = append(graphics.Amd, device)
		case vendorNVIDIA:
			zlog.Sugar().Infof("%s: NVIDIA graphics", dev.ID())
			graphics.Nvidia = append(graphics.Nvidia, device)
		case vendorIntel:
			zlog.Sugar().Infof("%s: Intel graphics", dev.ID())
			graphics.Intel = append(graphics.Intel, device)
		default:
			zlog.Sugar().Infof("%s: %s graphics", dev.ID(), vendorName(vendor))
			graphics.Other = append(graphics.Other, device)
		}
	}

	return graphics, nil
}

// CanSwitch reports whether the machine has switchable graphics: both an
// Intel and an NVIDIA controller present. Every mutating operation is gated
// on it.
func (g *Graphics) CanSwitch() bool {
	return len(g.Intel) > 0 && len(g.Nvidia) > 0
}

// Vendor reports the currently active driver: nvidia when the nouveau or
// nvidia module is loaded, intel otherwise. This is live state, not the
// persisted boot preference.
func (g *Graphics) Vendor() (string, error) {
	modules, err := kernel.Modules()
	if err != nil {
		return "", &Error{Kind: ErrModulesFetch, Err: err}
	}

	for _, module := range modules {
		if module.Name == "nouveau" || module.Name == "nvidia" {
			return "nvidia", nil
		}
	}

	return "intel", nil
}

// SetVendor persists the boot-time driver preference: regenerate the
// modprobe blacklist, toggle the fallback service (best effort) and rebuild
// the initramfs. The initramfs rebuild must observe the updated blacklist,
// so the file is written first, and its failure is fatal: booting with a
// stale initramfs can leave the display broken.
func (g *Graphics) SetVendor(vendor string) error {
	if err := g.switchableOrFail(); err != nil {
		return err
	}

	if err := writeModprobe(vendor); err != nil {
		return err
	}

	graphicsConfig := config.GetConfig().Graphics

	action := "disable"
	if vendor == "nvidia" {
		action = "enable"
	}
	zlog.Sugar().Infof("%s %s", action, graphicsConfig.FallbackService)

	status, err := Runner.Run(graphicsConfig.SystemctlCmd, action, graphicsConfig.FallbackService)
	if err != nil {
		return &Error{Kind: ErrCommand, Cmd: graphicsConfig.SystemctlCmd, Err: err}
	}
	if status != 0 {
		zlog.Sugar().Warnf("systemctl failed with status %d (not an error if the service does not exist)", status)
	}

	zlog.Info("updating initramfs")
	status, err = Runner.Run(graphicsConfig.InitramfsCmd, "-u")
	if err != nil {
		return &Error{Kind: ErrCommand, Cmd: graphicsConfig.InitramfsCmd, Err: err}
	}
	if status != 0 {
		return &Error{Kind: ErrUpdateInitramfs, Status: status}
	}

	return nil
}

// Power reports whether any NVIDIA device currently has a live node.
func (g *Graphics) Power() (bool, error) {
	if err := g.switchableOrFail(); err != nil {
		return false, err
	}

	for _, dev := range g.Nvidia {
		if dev.Exists() {
			return true, nil
		}
	}

	return false, nil
}

// SetPower attaches or removes the discrete GPU. Powering on is a bus
// rescan; the kernel rebinds a driver on its own. Powering off unbinds the
// entire NVIDIA device set before removing any function of it, failing on
// the first error in either phase. Completed steps are not rolled back; the
// caller re-queries Power to learn the actual state after a failure.
func (g *Graphics) SetPower(power bool) error {
	if err := g.switchableOrFail(); err != nil {
		return err
	}

	if power {
		zlog.Info("enabling graphics power")
		if err := g.Bus.Rescan(); err != nil {
			return &Error{Kind: ErrRescan, Err: err}
		}
		return nil
	}

	zlog.Info("disabling graphics power")

	for _, dev := range g.Nvidia {
		if err := dev.Unbind(); err != nil {
			return err
		}
	}
	for _, dev := range g.Nvidia {
		if err := dev.Remove(); err != nil {
			return err
		}
	}

	return nil
}

// AutoPower reconciles live power with the active driver: powered on iff
// the nvidia driver is in use.
func (g *Graphics) AutoPower() error {
	vendor, err := g.Vendor()
	if err != nil {
		return err
	}

	return g.SetPower(vendor == "nvidia")
}

func (g *Graphics) switchableOrFail() error {
	if !g.CanSwitch() {
		return &Error{Kind: ErrNotSwitchable}
	}
	return nil
}

// slotOf strips the function suffix from a PCI address, leaving the slot
// shared by all sibling functions.
func slotOf(id string) string {
	slot, _, _ := strings.Cut(id, ".")
	return slot
}

var (
	pcidbOnce sync.Once
	pcidbRepo *pcidb.PCIDB
)

// vendorName resolves a vendor id against the PCI ID database, falling back
// to the raw hex id when the database is unavailable.
func vendorName(vendor uint16) string {
	pcidbOnce.Do(func() {
		pcidbRepo, _ = pcidb.New()
	})

	hexID := fmt.Sprintf("%04x", vendor)
	if pcidbRepo != nil {
		if entry, ok := pcidbRepo.Vendors[hexID]; ok {
			return entry.Name
		}
	}

	return "0x" + strings.ToUpper(hexID)
}
