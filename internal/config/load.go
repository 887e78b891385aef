package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/spf13/viper"
)

var cfg Config
var home = os.Getenv("HOME")

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("power_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")                     // config file reading order starts with current working directory
	v.AddConfigPath("$HOME/.system76-power") // then home directory
	v.AddConfigPath("/etc/system76-power/")  // finally /etc/system76-power
	return v
}

func setDefaultConfig() *viper.Viper {
	v := getViper()
	v.SetDefault("general.data_dir", "/etc/system76-power")
	v.SetDefault("general.debug", false)
	v.SetDefault("rest.port", 9878)
	v.SetDefault("graphics.sysfs_root", "/sys")
	v.SetDefault("graphics.proc_modules", "/proc/modules")
	v.SetDefault("graphics.modprobe_path", "/etc/modprobe.d/system76-power.conf")
	v.SetDefault("graphics.systemctl_cmd", "systemctl")
	v.SetDefault("graphics.initramfs_cmd", "update-initramfs")
	v.SetDefault("graphics.fallback_service", "nvidia-fallback.service")
	return v
}

func LoadConfig() {
	paths := []string{
		".",
		home + "/.system76-power",
		"/etc/system76-power",
	}
	configFile := "power_config.json"
	v := setDefaultConfig()

	config, err := findConfig(paths, configFile)
	if err != nil {
		setDefaultConfig().Unmarshal(&cfg)
		return
	}

	modifiedConfig := removeComments(config)
	if err = v.ReadConfig(bytes.NewBuffer(modifiedConfig)); err != nil { // Viper only reads buffer, keeping comments in original config
		setDefaultConfig().Unmarshal(&cfg)
	}

	if err = v.Unmarshal(&cfg); err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func SetConfig(key string, value interface{}) {
	v := getViper()
	v.Set(key, value)
	err := v.Unmarshal(&cfg)
	if err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func GetConfig() *Config {
	if reflect.DeepEqual(cfg, Config{}) {
		LoadConfig()
	}
	return &cfg
}

func findConfig(paths []string, filename string) ([]byte, error) {
	for _, path := range paths {
		fullPath := filepath.Join(path, filename)
		_, err := os.Stat(fullPath)
		if err == nil {
			config, err := os.ReadFile(fullPath)
			if err == nil {
				return config, nil
			}
			return nil, err
		}
	}

	return nil, fmt.Errorf("file not found in any of the paths")
}

func removeComments(configBytes []byte) []byte {
	re := regexp.MustCompile("(?s)//.*?\n") // match all '//' until the end of the line
	result := re.ReplaceAll(configBytes, nil)
	return result
}
