package power

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPower(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	orig := FS
	FS = fs
	t.Cleanup(func() { FS = orig })

	return fs
}

func seedCpufreq(fs afero.Fs, min, max int) {
	dir := "/sys/devices/system/cpu/cpu0/cpufreq"
	afero.WriteFile(fs, dir+"/cpuinfo_min_freq", []byte(fmt.Sprintf("%d\n", min)), 0444)
	afero.WriteFile(fs, dir+"/cpuinfo_max_freq", []byte(fmt.Sprintf("%d\n", max)), 0444)
}

func readCpu0(t *testing.T, fs afero.Fs, attr string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, "/sys/devices/system/cpu/cpu0/cpufreq/"+attr)
	require.NoError(t, err)
	return string(data)
}

func TestFrequencyLimits(t *testing.T) {
	fs := setupPower(t)
	seedCpufreq(fs, 800000, 4200000)

	min, ok := FrequencyMinimum()
	require.True(t, ok)
	assert.Equal(t, 800000, min)

	max, ok := FrequencyMaximum()
	require.True(t, ok)
	assert.Equal(t, 4200000, max)
}

func TestFrequencyLimitsMissing(t *testing.T) {
	setupPower(t)

	_, ok := FrequencyMinimum()
	assert.False(t, ok)
	_, ok = FrequencyMaximum()
	assert.False(t, ok)
}

func TestPowersaveHalvesMaximum(t *testing.T) {
	fs := setupPower(t)
	seedCpufreq(fs, 800000, 4200000)

	Powersave()

	assert.Equal(t, "800000", readCpu0(t, fs, "scaling_min_freq"))
	assert.Equal(t, "2100000", readCpu0(t, fs, "scaling_max_freq"))
	assert.Equal(t, "powersave\n", readCpu0(t, fs, "scaling_governor"))
}

func TestPerformanceRestoresFullRange(t *testing.T) {
	fs := setupPower(t)
	seedCpufreq(fs, 800000, 4200000)

	Performance()

	assert.Equal(t, "800000", readCpu0(t, fs, "scaling_min_freq"))
	assert.Equal(t, "4200000", readCpu0(t, fs, "scaling_max_freq"))
	assert.Equal(t, "performance\n", readCpu0(t, fs, "scaling_governor"))
}

func TestBalancedKeepsRangeWithPowersaveGovernor(t *testing.T) {
	fs := setupPower(t)
	seedCpufreq(fs, 800000, 4200000)

	Balanced()

	assert.Equal(t, "4200000", readCpu0(t, fs, "scaling_max_freq"))
	assert.Equal(t, "powersave\n", readCpu0(t, fs, "scaling_governor"))
}

func TestApply(t *testing.T) {
	fs := setupPower(t)
	seedCpufreq(fs, 800000, 4200000)

	require.NoError(t, Apply(ProfilePerformance))
	assert.Equal(t, "performance\n", readCpu0(t, fs, "scaling_governor"))

	require.NoError(t, Apply(ProfileBattery))
	assert.Equal(t, "powersave\n", readCpu0(t, fs, "scaling_governor"))
	assert.Equal(t, "2100000", readCpu0(t, fs, "scaling_max_freq"))

	require.NoError(t, Apply(ProfileBalanced))
	assert.Equal(t, "4200000", readCpu0(t, fs, "scaling_max_freq"))

	assert.ErrorIs(t, Apply("turbo"), ErrUnknownProfile)
}

func TestApplyWithoutCpufreqTree(t *testing.T) {
	fs := setupPower(t)

	require.NoError(t, Apply(ProfilePerformance))

	_, err := afero.ReadFile(fs, "/sys/devices/system/cpu/cpu0/cpufreq/scaling_governor")
	assert.Error(t, err, "nothing may be written when limits are unreadable")
}
