package model

import (
	"fmt"
	"sync"
)

// Toolchain knows the command lines that build a sub-application in place.
type Toolchain interface {
	Label() string
	Commands(cfg *Config) ([]string, error)
}

// ToolchainFactory returns the Toolchain named by a config's toolchain key.
type ToolchainFactory func() Toolchain

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ToolchainFactory)
)

// RegisterToolchain makes a toolchain selectable from embersite.yml. The
// built-in ember-cli, commands and prebuilt toolchains register from init.
func RegisterToolchain(name string, factory ToolchainFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("RegisterToolchain called twice for " + name)
	}
	registry[name] = factory
}

// GetToolchain looks up the toolchain a config names. Config.Validate uses it
// to reject unknown toolchains before any app is built.
func GetToolchain(name string) (Toolchain, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("toolchain '%s' not found in registry", name)
	}
	return factory(), nil
}
