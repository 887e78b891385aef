package power

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/spf13/afero"

	"gitlab.com/system76/power-management-service/internal/config"
)

func cpuPath() string {
	return filepath.Join(config.GetConfig().Graphics.SysfsRoot, "devices/system/cpu")
}

func freqPath(core int, attr string) string {
	return filepath.Join(cpuPath(), fmt.Sprintf("cpu%d/cpufreq", core), attr)
}

// NumCPUs reports the number of logical CPUs, preferring the host view and
// falling back to the sysfs possible mask.
func NumCPUs() int {
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		return count
	}

	data, err := afero.ReadFile(FS, filepath.Join(cpuPath(), "possible"))
	if err != nil {
		return 0
	}

	_, upper, found := strings.Cut(strings.TrimSpace(string(data)), "-")
	if !found {
		return 0
	}
	highest, err := strconv.Atoi(upper)
	if err != nil {
		return 0
	}

	return highest + 1
}

// FrequencyMinimum reads the hardware minimum frequency of cpu0 in kHz.
func FrequencyMinimum() (int, bool) {
	return readFreq("cpuinfo_min_freq")
}

// FrequencyMaximum reads the hardware maximum frequency of cpu0 in kHz.
func FrequencyMaximum() (int, bool) {
	return readFreq("cpuinfo_max_freq")
}

func readFreq(attr string) (int, bool) {
	data, err := afero.ReadFile(FS, freqPath(0, attr))
	if err != nil {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}

	return value, true
}

func SetFrequencyMinimum(core, frequency int) {
	writeValue(freqPath(core, "scaling_min_freq"), strconv.Itoa(frequency))
}

func SetFrequencyMaximum(core, frequency int) {
	writeValue(freqPath(core, "scaling_max_freq"), strconv.Itoa(frequency))
}

func SetGovernor(core int, governor string) {
	writeValue(freqPath(core, "scaling_governor"), governor+"\n")
}

// Powersave clamps every core to half the hardware maximum under the
// powersave governor. Best effort: cores whose cpufreq tree is missing are
// skipped with a log entry.
func Powersave() {
	cpus, min, max, ok := frequencyRange()
	if !ok {
		return
	}

	max /= 2
	for core := 0; core < cpus; core++ {
		SetFrequencyMinimum(core, min)
		SetFrequencyMaximum(core, max)
		SetGovernor(core, "powersave")
	}
}

// Performance restores the full frequency range under the performance
// governor.
func Performance() {
	cpus, min, max, ok := frequencyRange()
	if !ok {
		return
	}

	for core := 0; core < cpus; core++ {
		SetFrequencyMinimum(core, min)
		SetFrequencyMaximum(core, max)
		SetGovernor(core, "performance")
	}
}

// Balanced keeps the full frequency range but lets the powersave governor
// scale within it.
func Balanced() {
	cpus, min, max, ok := frequencyRange()
	if !ok {
		return
	}

	for core := 0; core < cpus; core++ {
		SetFrequencyMinimum(core, min)
		SetFrequencyMaximum(core, max)
		SetGovernor(core, "powersave")
	}
}

func frequencyRange() (cpus, min, max int, ok bool) {
	cpus = NumCPUs()
	if cpus == 0 {
		zlog.Warn("cannot determine CPU count, leaving cpufreq untouched")
		return 0, 0, 0, false
	}

	min, okMin := FrequencyMinimum()
	max, okMax := FrequencyMaximum()
	if !okMin || !okMax {
		zlog.Warn("cpufreq limits unreadable, leaving cpufreq untouched")
		return 0, 0, 0, false
	}

	return cpus, min, max, true
}

func writeValue(path, value string) {
	if err := afero.WriteFile(FS, path, []byte(value), 0644); err != nil {
		zlog.Sugar().Warnf("failed to write %s: %v", path, err)
	}
}
