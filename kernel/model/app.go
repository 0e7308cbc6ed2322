package model

import (
	"path/filepath"
	"sync"
)

// App is one sub-application directory below the namespace directory. Apps are
// created fresh by every discovery pass.
type App struct {
	Dir       string
	Namespace string

	manifest  string
	namePath  string
	outputDir string

	nameOnce sync.Once
	name     string
	nameErr  error
}

func NewApp(dir string, cfg *Config) *App {
	return &App{
		Dir:       dir,
		Namespace: cfg.Namespace,
		manifest:  cfg.Manifest,
		namePath:  cfg.NamePath,
		outputDir: cfg.OutputDir,
	}
}

// Basename is the directory name, the key templates use to refer to the app.
func (a *App) Basename() string {
	return filepath.Base(a.Dir)
}

func (a *App) ManifestPath() string {
	return filepath.Join(a.Dir, a.manifest)
}

func (a *App) OutputPath() string {
	return filepath.Join(a.Dir, a.outputDir)
}

// Name is the package name declared in the manifest. It is read on first use
// and cached, together with any read error, for the life of the App.
func (a *App) Name() (string, error) {
	a.nameOnce.Do(func() {
		a.name, a.nameErr = ReadDeclaredName(a.ManifestPath(), a.namePath)
	})
	return a.name, a.nameErr
}

// Label is the declared name when it can be read, otherwise the directory name.
func (a *App) Label() string {
	if name, err := a.Name(); err == nil {
		return name
	}
	return a.Basename()
}
