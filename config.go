package main

import (
	"fmt"

	"github.com/jinzhu/configor"
)

// DevServeConfig holds the configuration for an application instance.
type DevServeConfig struct {
	Listen string `default:"127.0.0.1:3000"`
	Root   string `default:"."`

	SocketPermissions uint32 `default:"0660"`
}

// LoadConfig populates a configuration from its defaults, the given files
// (missing files are skipped quietly) and DEVSERVE_* environment variables.
func LoadConfig(files ...string) (*DevServeConfig, error) {
	config := &DevServeConfig{}
	loader := configor.New(&configor.Config{ENVPrefix: "DEVSERVE", Silent: true})
	if err := loader.Load(config, files...); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return config, nil
}
