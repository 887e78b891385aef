package graphics

import (
	"errors"

	"gitlab.com/system76/power-management-service/pci"
)

// Device is one logical GPU package: an identifying address plus the PCI
// functions sharing its slot (the GPU core and companions such as its audio
// or USB-C controller). The function set is fixed at discovery; only
// existence and driver bindings are re-read.
type Device struct {
	id        string
	functions []*pci.Device
}

func NewDevice(id string, functions []*pci.Device) *Device {
	return &Device{id: id, functions: functions}
}

func (d *Device) ID() string {
	return d.id
}

// Exists reports whether any function of the group still has a live node.
func (d *Device) Exists() bool {
	for _, fn := range d.functions {
		if fn.Exists() {
			return true
		}
	}
	return false
}

// Unbind detaches the bound driver from every live function of the group.
// This mutates live kernel driver state; the caller must hold exclusive
// control of the device. A function with no driver bound is skipped.
func (d *Device) Unbind() error {
	for _, fn := range d.functions {
		if !fn.Exists() {
			continue
		}

		driver, err := fn.Driver()
		switch {
		case err == nil:
			zlog.Sugar().Infof("%s: unbinding %s", driver, fn.ID())
			if err := fn.Unbind(driver); err != nil {
				return &Error{Kind: ErrUnbind, Function: fn.ID(), Driver: driver, Err: err}
			}
		case errors.Is(err, pci.ErrNoDriver):
			// nothing bound, nothing to unbind
		default:
			return &Error{Kind: ErrPciDriver, Device: d.id, Err: err}
		}
	}

	return nil
}

// Remove deletes every live function node of the group. A function that is
// still driver-bound is a hard failure: removing a claimed device can
// corrupt kernel state, so the whole group must be unbound first. Functions
// whose nodes are already gone are skipped.
func (d *Device) Remove() error {
	for _, fn := range d.functions {
		if !fn.Exists() {
			zlog.Sugar().Warnf("%s: already removed", fn.ID())
			continue
		}

		driver, err := fn.Driver()
		switch {
		case err == nil:
			zlog.Sugar().Errorf("%s: in use by %s", fn.ID(), driver)
			return &Error{Kind: ErrDeviceInUse, Function: fn.ID(), Driver: driver}
		case errors.Is(err, pci.ErrNoDriver):
			zlog.Sugar().Infof("%s: removing", fn.ID())
			if err := fn.Remove(); err != nil {
				return &Error{Kind: ErrRemove, Device: d.id, Err: err}
			}
		default:
			return &Error{Kind: ErrPciDriver, Device: d.id, Err: err}
		}
	}

	return nil
}
