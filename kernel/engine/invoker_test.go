package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frontside/embersite/kernel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecInvoker_RunsInAppDir(t *testing.T) {
	site := newSite(t)
	appDir := site.addApp("bar", "bar", nil)
	bar := discoverOne(t, site, "bar")

	invoker := NewExecInvoker([]string{
		"mkdir -p dist/assets",
		"sh -c 'echo building; touch dist/assets/vendor.1.js'",
	}, 0)
	result, err := invoker.Build(context.Background(), bar)
	require.NoError(t, err)

	assert.Contains(t, string(result.Output), "building")
	assert.FileExists(t, filepath.Join(appDir, "dist", "assets", "vendor.1.js"))
	assert.True(t, IsBuilt(bar))
}

func TestExecInvoker_StopsAtFirstFailure(t *testing.T) {
	site := newSite(t)
	appDir := site.addApp("bar", "bar", nil)
	bar := discoverOne(t, site, "bar")

	invoker := NewExecInvoker([]string{
		"sh -c 'echo installing; exit 3'",
		"touch never-ran",
	}, 0)
	_, err := invoker.Build(context.Background(), bar)

	var failure *model.BuildFailure
	require.True(t, errors.As(err, &failure), "expected BuildFailure, got %v", err)
	assert.Equal(t, 3, failure.ExitCode)
	assert.Equal(t, "bar", failure.App)
	assert.Equal(t, appDir, failure.Dir)
	assert.Contains(t, string(failure.Output), "installing")
	assert.Contains(t, failure.Error(), "exit status 3")

	_, statErr := os.Stat(filepath.Join(appDir, "never-ran"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecInvoker_Timeout(t *testing.T) {
	site := newSite(t)
	site.addApp("bar", "bar", nil)
	bar := discoverOne(t, site, "bar")

	invoker := NewExecInvoker([]string{"sleep 10"}, 100*time.Millisecond)
	start := time.Now()
	_, err := invoker.Build(context.Background(), bar)

	var failure *model.BuildFailure
	require.True(t, errors.As(err, &failure), "expected BuildFailure, got %v", err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestExecInvoker_BadCommandLine(t *testing.T) {
	site := newSite(t)
	site.addApp("bar", "bar", nil)
	bar := discoverOne(t, site, "bar")

	_, err := NewExecInvoker([]string{"sh -c 'unterminated"}, 0).Build(context.Background(), bar)
	var failure *model.BuildFailure
	assert.True(t, errors.As(err, &failure))

	_, err = NewExecInvoker(nil, 0).Build(context.Background(), bar)
	assert.True(t, errors.As(err, &failure))
}

func TestNewToolchainInvoker(t *testing.T) {
	cfg := model.DefaultConfig()
	invoker, err := NewToolchainInvoker(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"npm install", "bower install", "npm run-script build -- -e production"}, invoker.Commands)

	cfg.Toolchain = "commands"
	cfg.Commands = []string{"make dist"}
	cfg.BuildTimeout = "2m"
	invoker, err = NewToolchainInvoker(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"make dist"}, invoker.Commands)
	assert.Equal(t, 2*time.Minute, invoker.Timeout)
}

func TestNewToolchainInvoker_Prebuilt(t *testing.T) {
	site := newSite(t)
	site.addApp("bar", "bar", nil)
	bar := discoverOne(t, site, "bar")

	site.cfg.Toolchain = "prebuilt"
	invoker, err := NewToolchainInvoker(site.cfg)
	require.NoError(t, err)

	_, err = invoker.Build(context.Background(), bar)
	var failure *model.BuildFailure
	require.True(t, errors.As(err, &failure), "expected BuildFailure, got %v", err)
	assert.Contains(t, failure.Error(), "prebuilt")
}
