package graphics

import "fmt"

// ErrorKind tags the failing operation of an Error.
type ErrorKind int

const (
	ErrCommand ErrorKind = iota
	ErrDeviceInUse
	ErrModprobeFileOpen
	ErrModprobeFileWrite
	ErrModulesFetch
	ErrNotSwitchable
	ErrPciDriver
	ErrRemove
	ErrRescan
	ErrUnbind
	ErrUpdateInitramfs
)

// Error carries the failing operation kind plus whatever context the
// operation had: device id, function id, driver name, command name or the
// exit status of an external command.
type Error struct {
	Kind     ErrorKind
	Device   string
	Function string
	Driver   string
	Cmd      string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrCommand:
		return fmt.Sprintf("failed to execute %s command: %v", e.Cmd, e.Err)
	case ErrDeviceInUse:
		return fmt.Sprintf("%s in use by %s", e.Function, e.Driver)
	case ErrModprobeFileOpen:
		return fmt.Sprintf("failed to open modprobe file: %v", e.Err)
	case ErrModprobeFileWrite:
		return fmt.Sprintf("failed to write to modprobe file: %v", e.Err)
	case ErrModulesFetch:
		return fmt.Sprintf("failed to fetch list of active kernel modules: %v", e.Err)
	case ErrNotSwitchable:
		return "does not have switchable graphics"
	case ErrPciDriver:
		return fmt.Sprintf("PCI driver error on %s: %v", e.Device, e.Err)
	case ErrRemove:
		return fmt.Sprintf("failed to remove PCI device %s: %v", e.Device, e.Err)
	case ErrRescan:
		return fmt.Sprintf("failed to rescan PCI bus: %v", e.Err)
	case ErrUnbind:
		return fmt.Sprintf("failed to unbind %s on PCI driver %s: %v", e.Function, e.Driver, e.Err)
	case ErrUpdateInitramfs:
		return fmt.Sprintf("update-initramfs failed with status %d", e.Status)
	}
	return fmt.Sprintf("graphics error: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
