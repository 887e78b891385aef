package power

import (
	"errors"
	"fmt"
)

const (
	ProfilePerformance = "performance"
	ProfileBalanced    = "balanced"
	ProfileBattery     = "battery"
)

var ErrUnknownProfile = errors.New("unknown power profile")

// Apply tunes cpufreq for the named profile.
func Apply(profile string) error {
	switch profile {
	case ProfilePerformance:
		zlog.Info("applying performance profile")
		Performance()
	case ProfileBalanced:
		zlog.Info("applying balanced profile")
		Balanced()
	case ProfileBattery:
		zlog.Info("applying battery profile")
		Powersave()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}

	return nil
}
