package model

import (
	"fmt"
	"path"
	"strings"
)

// AppNotFoundError means no discovered directory has the requested basename.
type AppNotFoundError struct {
	Name      string
	Namespace string
}

func (e *AppNotFoundError) Error() string {
	return fmt.Sprintf("unable to find Ember app in '%s'", path.Join(e.Namespace, e.Name))
}

// AssetNotFoundError means the output directory holds no file matching a role.
type AssetNotFoundError struct {
	App     string
	Role    Role
	Pattern string
	Dir     string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("no %s matching '%s' in [%s] for Ember app '%s'", e.Role, e.Pattern, e.Dir, e.App)
}

// BuildFailure is returned when the external build exits non-zero or leaves no
// output behind.
type BuildFailure struct {
	App      string
	Dir      string
	Command  string
	ExitCode int
	Output   []byte
	Err      error
}

func (e *BuildFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build of Ember app '%s' in [%s] failed", e.App, e.Dir)
	if e.Command != "" {
		fmt.Fprintf(&b, " running '%s'", e.Command)
	}
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " (exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if tail := outputTail(e.Output, 20); tail != "" {
		fmt.Fprintf(&b, "\n%s", tail)
	}
	return b.String()
}

func (e *BuildFailure) Unwrap() error {
	return e.Err
}

// ManifestReadError means the manifest is missing or does not declare a name.
type ManifestReadError struct {
	Path string
	Err  error
}

func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("unable to read manifest [%s]: %v", e.Path, e.Err)
}

func (e *ManifestReadError) Unwrap() error {
	return e.Err
}

func outputTail(output []byte, lines int) string {
	trimmed := strings.TrimRight(string(output), "\n")
	if trimmed == "" {
		return ""
	}
	all := strings.Split(trimmed, "\n")
	if len(all) > lines {
		all = all[len(all)-lines:]
	}
	return strings.Join(all, "\n")
}
