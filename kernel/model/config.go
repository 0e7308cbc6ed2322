package model

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	ConfigFileName = "embersite.yml"

	DefaultNamespace = "ember-apps"
	DefaultManifest  = "package.json"
	DefaultNamePath  = "$.name"
	DefaultOutputDir = "dist/assets"
	DefaultToolchain = "ember-cli"
	DefaultURLPrefix = "/"
)

// Config describes where the sub-applications live and how they are built.
type Config struct {
	Root         string         `yaml:"root"`
	Namespace    string         `yaml:"namespace"`
	Manifest     string         `yaml:"manifest"`
	NamePath     string         `yaml:"name_path"`
	OutputDir    string         `yaml:"output_dir"`
	Toolchain    string         `yaml:"toolchain"`
	Commands     []string       `yaml:"commands"`
	Parallelism  int            `yaml:"parallelism"`
	BuildTimeout string         `yaml:"build_timeout"`
	URLPrefix    string         `yaml:"url_prefix"`
	Metrics      *MetricsConfig `yaml:"metrics"`
	S3           *S3Config      `yaml:"s3"`
}

type MetricsConfig struct {
	Influx *InfluxConfig `yaml:"influx"`
}

type InfluxConfig struct {
	Url         string `yaml:"url"`
	Token       string `yaml:"token"`
	Org         string `yaml:"org"`
	Bucket      string `yaml:"bucket"`
	Measurement string `yaml:"measurement"`
}

type S3Config struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Prefix string `yaml:"prefix"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default value.
func (c *Config) ApplyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if c.NamePath == "" {
		c.NamePath = DefaultNamePath
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Toolchain == "" {
		c.Toolchain = DefaultToolchain
	}
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
	if c.URLPrefix == "" {
		c.URLPrefix = DefaultURLPrefix
	}
}

func (c *Config) Validate() error {
	if filepath.IsAbs(c.Namespace) {
		return errors.Errorf("namespace [%s] must be relative to the site root", c.Namespace)
	}
	if filepath.IsAbs(c.OutputDir) {
		return errors.Errorf("output_dir [%s] must be relative to the app directory", c.OutputDir)
	}
	if _, err := GetToolchain(c.Toolchain); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// NamespaceDir is the directory whose immediate children are the sub-applications.
func (c *Config) NamespaceDir() string {
	return filepath.Join(c.Root, c.Namespace)
}

// Timeout returns the build timeout, zero meaning no limit.
func (c *Config) Timeout() (time.Duration, error) {
	if c.BuildTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.BuildTimeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid build_timeout [%s]", c.BuildTimeout)
	}
	return d, nil
}
