package config

type Config struct {
	General  `mapstructure:"general"`
	Rest     `mapstructure:"rest"`
	Graphics `mapstructure:"graphics"`
}

type General struct {
	DataDir string `mapstructure:"data_dir"`
	Debug   bool   `mapstructure:"debug"`
}

type Rest struct {
	Port int `mapstructure:"port"`
}

type Graphics struct {
	SysfsRoot       string `mapstructure:"sysfs_root"`       // mount point of sysfs
	ProcModules     string `mapstructure:"proc_modules"`     // loaded kernel module list
	ModprobePath    string `mapstructure:"modprobe_path"`    // generated modprobe config
	SystemctlCmd    string `mapstructure:"systemctl_cmd"`
	InitramfsCmd    string `mapstructure:"initramfs_cmd"`
	FallbackService string `mapstructure:"fallback_service"` // unit toggled on vendor switch
}
