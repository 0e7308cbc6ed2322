package model

// EmberCliToolchain installs npm and bower packages, then runs the package's
// build script in production mode so bundles come out fingerprinted and minified.
type EmberCliToolchain struct{}

func (t *EmberCliToolchain) Label() string {
	return "ember-cli"
}

func (t *EmberCliToolchain) Commands(cfg *Config) ([]string, error) {
	return []string{
		"npm install",
		"bower install",
		"npm run-script build -- -e production",
	}, nil
}

func init() {
	RegisterToolchain("ember-cli", func() Toolchain {
		return &EmberCliToolchain{}
	})
}
