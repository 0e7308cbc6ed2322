package model

import "fmt"

// CommandsToolchain runs the command lines listed under `commands` in the config.
type CommandsToolchain struct{}

func (t *CommandsToolchain) Label() string {
	return "commands"
}

func (t *CommandsToolchain) Commands(cfg *Config) ([]string, error) {
	if len(cfg.Commands) == 0 {
		return nil, fmt.Errorf("toolchain '%s' requires at least one entry under 'commands'", t.Label())
	}
	return cfg.Commands, nil
}

func init() {
	RegisterToolchain("commands", func() Toolchain {
		return &CommandsToolchain{}
	})
}
