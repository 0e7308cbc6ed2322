package model

import "fmt"

// PrebuiltToolchain never builds; apps must ship their output directory.
type PrebuiltToolchain struct{}

func (t *PrebuiltToolchain) Label() string {
	return "prebuilt"
}

func (t *PrebuiltToolchain) Commands(cfg *Config) ([]string, error) {
	return nil, fmt.Errorf("toolchain '%s' does not build apps, run the build by hand so that [%s] exists", t.Label(), cfg.OutputDir)
}

func init() {
	RegisterToolchain("prebuilt", func() Toolchain { return &PrebuiltToolchain{} })
}
