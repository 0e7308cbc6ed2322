package loader

import (
	"os"
	"path/filepath"

	"github.com/frontside/embersite/kernel/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads an embersite.yml file. Relative roots are resolved against
// the directory holding the file.
func LoadConfig(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config [%s]", path)
	}

	cfg, err := LoadConfigBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config [%s]", path)
	}

	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

func LoadConfigBytes(data []byte) (*model.Config, error) {
	cfg := &model.Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSiteConfig loads root/embersite.yml, falling back to defaults rooted at
// root when the file does not exist.
func LoadSiteConfig(root string) (*model.Config, error) {
	path := filepath.Join(root, model.ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := model.DefaultConfig()
		cfg.Root = root
		return cfg, nil
	}
	return LoadConfig(path)
}
