package graphics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	sysDevices = "/sys/bus/pci/devices"
	sysDrivers = "/sys/bus/pci/drivers"
	sysRescan  = "/sys/bus/pci/rescan"
)

// fakeSysfs emulates the kernel's reaction to PCI control writes on top of
// an in-memory filesystem: writing to a device's remove file deletes its
// node, writing a device id to a driver's unbind file clears the binding
// and a bus rescan restores every removed node. With stickyDrivers set,
// unbind writes are accepted but leave the binding in place, emulating a
// driver that re-claims its device.
type fakeSysfs struct {
	afero.Fs
	removed       map[string]map[string][]byte
	ops           []string
	stickyDrivers bool
	brokenUevents map[string]bool
}

func newFakeSysfs() *fakeSysfs {
	return &fakeSysfs{
		Fs:            afero.NewMemMapFs(),
		removed:       map[string]map[string][]byte{},
		brokenUevents: map[string]bool{},
	}
}

// breakUevent makes the device's uevent unreadable, emulating a permission
// or transient I/O failure on a node that is still present.
func (f *fakeSysfs) breakUevent(id string) {
	f.brokenUevents[filepath.Join(sysDevices, id, "uevent")] = true
}

func (f *fakeSysfs) Open(name string) (afero.File, error) {
	if f.brokenUevents[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f *fakeSysfs) addDevice(id, class, vendor, driver string) {
	dir := filepath.Join(sysDevices, id)
	afero.WriteFile(f.Fs, filepath.Join(dir, "class"), []byte(class+"\n"), 0444)
	afero.WriteFile(f.Fs, filepath.Join(dir, "vendor"), []byte(vendor+"\n"), 0444)

	uevent := "PCI_SLOT_NAME=" + id + "\n"
	if driver != "" {
		uevent = "DRIVER=" + driver + "\n" + uevent
	}
	afero.WriteFile(f.Fs, filepath.Join(dir, "uevent"), []byte(uevent), 0444)
}

func (f *fakeSysfs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_WRONLY != 0 {
		switch {
		case name == sysRescan:
			return &ctlFile{name: name, apply: func(string) {
				f.ops = append(f.ops, "rescan")
				f.restoreAll()
			}}, nil
		case strings.HasPrefix(name, sysDevices+"/") && strings.HasSuffix(name, "/remove"):
			id := filepath.Base(filepath.Dir(name))
			return &ctlFile{name: name, apply: func(string) {
				f.ops = append(f.ops, "remove "+id)
				f.removeDevice(id)
			}}, nil
		case strings.HasPrefix(name, sysDrivers+"/") && strings.HasSuffix(name, "/unbind"):
			driver := filepath.Base(filepath.Dir(name))
			return &ctlFile{name: name, apply: func(id string) {
				id = strings.TrimSpace(id)
				f.ops = append(f.ops, fmt.Sprintf("unbind %s %s", driver, id))
				if !f.stickyDrivers {
					f.unbindDevice(id)
				}
			}}, nil
		}
	}

	return f.Fs.OpenFile(name, flag, perm)
}

func (f *fakeSysfs) removeDevice(id string) {
	dir := filepath.Join(sysDevices, id)
	entries, err := afero.ReadDir(f.Fs, dir)
	if err != nil {
		return
	}

	files := map[string][]byte{}
	for _, entry := range entries {
		data, err := afero.ReadFile(f.Fs, filepath.Join(dir, entry.Name()))
		if err == nil {
			files[entry.Name()] = data
		}
	}
	f.removed[id] = files

	f.Fs.RemoveAll(dir)
}

func (f *fakeSysfs) restoreAll() {
	for id, files := range f.removed {
		for name, data := range files {
			afero.WriteFile(f.Fs, filepath.Join(sysDevices, id, name), data, 0444)
		}
	}
	f.removed = map[string]map[string][]byte{}
}

func (f *fakeSysfs) unbindDevice(id string) {
	path := filepath.Join(sysDevices, id, "uevent")
	data, err := afero.ReadFile(f.Fs, path)
	if err != nil {
		return
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "DRIVER=") {
			continue
		}
		kept = append(kept, line)
	}
	afero.WriteFile(f.Fs, path, []byte(strings.Join(kept, "\n")), 0444)
}

// ctlFile is a write-only control file; the captured content is handed to
// apply on close, mirroring how the kernel acts on sysfs control writes.
type ctlFile struct {
	name  string
	apply func(string)
	buf   bytes.Buffer
}

func (c *ctlFile) Write(p []byte) (int, error)                  { return c.buf.Write(p) }
func (c *ctlFile) WriteString(s string) (int, error)            { return c.buf.WriteString(s) }
func (c *ctlFile) WriteAt(p []byte, off int64) (int, error)     { return c.buf.Write(p) }
func (c *ctlFile) Close() error                                 { c.apply(c.buf.String()); return nil }
func (c *ctlFile) Name() string                                 { return c.name }
func (c *ctlFile) Read(p []byte) (int, error)                   { return 0, os.ErrInvalid }
func (c *ctlFile) ReadAt(p []byte, off int64) (int, error)      { return 0, os.ErrInvalid }
func (c *ctlFile) Readdir(count int) ([]os.FileInfo, error)     { return nil, os.ErrInvalid }
func (c *ctlFile) Readdirnames(n int) ([]string, error)         { return nil, os.ErrInvalid }
func (c *ctlFile) Seek(offset int64, whence int) (int64, error) { return 0, os.ErrInvalid }
func (c *ctlFile) Stat() (os.FileInfo, error)                   { return nil, os.ErrInvalid }
func (c *ctlFile) Sync() error                                  { return nil }
func (c *ctlFile) Truncate(size int64) error                    { return nil }

// fakeRunner records external command invocations and reports configured
// exit statuses.
type fakeRunner struct {
	commands [][]string
	statuses map[string]int
	err      error
}

func (r *fakeRunner) Run(name string, args ...string) (int, error) {
	r.commands = append(r.commands, append([]string{name}, args...))
	if r.err != nil {
		return 0, r.err
	}
	if status, ok := r.statuses[name]; ok {
		return status, nil
	}
	return 0, nil
}
