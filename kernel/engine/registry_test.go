package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/frontside/embersite/kernel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Discover(t *testing.T) {
	site := newSite(t)
	site.addApp("zeta", "zeta", nil)
	site.addApp("alpha", "alpha", nil)
	require.NoError(t, os.WriteFile(filepath.Join(site.cfg.NamespaceDir(), "README.md"), []byte("apps"), 0644))

	r := NewRegistry(site.cfg, newFakeInvoker())
	apps, err := r.Discover()
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.Equal(t, "alpha", apps[0].Basename())
	assert.Equal(t, "zeta", apps[1].Basename())
	assert.Equal(t, apps, r.Apps())
}

func TestRegistry_DiscoverNewPass(t *testing.T) {
	site := newSite(t)
	site.addApp("foo", "foo-app", nil)

	r := NewRegistry(site.cfg, newFakeInvoker())
	first, err := r.Discover()
	require.NoError(t, err)

	site.addApp("bar", "bar", nil)
	second, err := r.Discover()
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
	assert.NotSame(t, first[0], second[1])
}

func TestRegistry_DiscoverManifestError(t *testing.T) {
	site := newSite(t)
	site.addApp("foo", "foo-app", nil)
	require.NoError(t, os.MkdirAll(filepath.Join(site.cfg.NamespaceDir(), "broken"), 0755))

	_, err := NewRegistry(site.cfg, newFakeInvoker()).Discover()
	var manifestErr *model.ManifestReadError
	require.True(t, errors.As(err, &manifestErr), "expected ManifestReadError, got %v", err)
	assert.Contains(t, manifestErr.Path, "broken")
}

func TestRegistry_DiscoverMissingNamespace(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Root = t.TempDir()

	_, err := NewRegistry(cfg, newFakeInvoker()).Discover()
	assert.Error(t, err)
}

func TestRegistry_EnsureBuilt_OnlyUnbuilt(t *testing.T) {
	site := newSite(t)
	site.fooBar()
	site.addApp("baz", "baz", nil)

	invoker := newFakeInvoker(standardDist...)
	r := NewRegistry(site.cfg, invoker)
	apps, err := r.Discover()
	require.NoError(t, err)

	require.NoError(t, r.EnsureBuilt(context.Background(), apps))

	assert.Equal(t, 0, invoker.count("foo"))
	assert.Equal(t, 1, invoker.count("bar"))
	assert.Equal(t, 1, invoker.count("baz"))

	status, found := r.Status("foo")
	require.True(t, found)
	assert.Equal(t, UpToDate, status.State)
	status, found = r.Status("bar")
	require.True(t, found)
	assert.Equal(t, Built, status.State)

	// everything has output now, so a second pass builds nothing
	require.NoError(t, r.EnsureBuilt(context.Background(), apps))
	assert.Equal(t, 2, invoker.total())
}

func TestRegistry_EnsureBuilt_Parallel(t *testing.T) {
	site := newSite(t)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		site.addApp(name, name+"-app", nil)
	}
	site.cfg.Parallelism = 3

	invoker := newFakeInvoker(standardDist...)
	r := NewRegistry(site.cfg, invoker)
	apps, err := r.Discover()
	require.NoError(t, err)

	require.NoError(t, r.EnsureBuilt(context.Background(), apps))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, 1, invoker.count(name), "app %s", name)
	}
}

func TestRegistry_EnsureBuilt_Failure(t *testing.T) {
	site := newSite(t)
	site.fooBar()

	invoker := newFakeInvoker(standardDist...)
	invoker.fail["bar"] = &model.BuildFailure{App: "bar", Command: "npm install", ExitCode: 1}
	observer := &recordingObserver{}

	r := NewRegistry(site.cfg, invoker)
	r.Observer = observer
	apps, err := r.Discover()
	require.NoError(t, err)

	err = r.EnsureBuilt(context.Background(), apps)
	var failure *model.BuildFailure
	require.True(t, errors.As(err, &failure), "expected BuildFailure, got %v", err)
	assert.Equal(t, "npm install", failure.Command)

	status, _ := r.Status("bar")
	assert.Equal(t, Failed, status.State)
	assert.Equal(t, []string{"bar"}, observer.apps)
	assert.Error(t, observer.errs[0])
}

func TestRegistry_EnsureBuilt_NoOutput(t *testing.T) {
	site := newSite(t)
	site.addApp("bar", "bar", nil)

	invoker := newFakeInvoker()
	invoker.noDist = true
	r := NewRegistry(site.cfg, invoker)
	apps, err := r.Discover()
	require.NoError(t, err)

	err = r.EnsureBuilt(context.Background(), apps)
	var failure *model.BuildFailure
	require.True(t, errors.As(err, &failure), "expected BuildFailure, got %v", err)
	assert.Contains(t, failure.Error(), "without creating")
}

func TestRegistry_FindByName(t *testing.T) {
	site := newSite(t)
	site.addApp("blog-widget", "visualizations", nil)

	r := NewRegistry(site.cfg, newFakeInvoker())
	_, err := r.Discover()
	require.NoError(t, err)

	app, err := r.FindByName("blog-widget")
	require.NoError(t, err)
	assert.Equal(t, "blog-widget", app.Basename())

	_, err = r.FindByName("visualizations")
	var notFound *model.AppNotFoundError
	require.True(t, errors.As(err, &notFound), "expected AppNotFoundError, got %v", err)
	assert.Equal(t, "unable to find Ember app in 'ember-apps/visualizations'", err.Error())
}

func TestRegistry_WithApp(t *testing.T) {
	site := newSite(t)
	site.fooBar()

	r := NewRegistry(site.cfg, newFakeInvoker())
	_, err := r.Discover()
	require.NoError(t, err)

	var seen string
	require.NoError(t, r.WithApp("foo", func(app *model.App) error {
		seen, _ = app.Name()
		return nil
	}))
	assert.Equal(t, "foo-app", seen)

	called := false
	err = r.WithApp("foo-app", func(*model.App) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestRegistry_Scenario(t *testing.T) {
	site := newSite(t)
	site.fooBar()

	invoker := newFakeInvoker(standardDist...)
	r := NewRegistry(site.cfg, invoker)
	apps, err := r.Discover()
	require.NoError(t, err)
	require.NoError(t, r.EnsureBuilt(context.Background(), apps))

	assert.Equal(t, 1, invoker.total())
	assert.Equal(t, 1, invoker.count("bar"))

	foo, err := r.FindByName("foo")
	require.NoError(t, err)
	resource, err := Resolve(foo, model.VendorScript)
	require.NoError(t, err)
	assert.Equal(t, "vendor.abc123.js", filepath.Base(resource.SourcePath))

	_, err = r.FindByName("foo-app")
	var notFound *model.AppNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestIsBuilt(t *testing.T) {
	site := newSite(t)
	site.fooBar()

	r := NewRegistry(site.cfg, newFakeInvoker())
	_, err := r.Discover()
	require.NoError(t, err)

	foo, _ := r.FindByName("foo")
	bar, _ := r.FindByName("bar")

	assert.True(t, IsBuilt(foo))
	assert.True(t, IsBuilt(foo))
	assert.False(t, IsBuilt(bar))
	assert.False(t, IsBuilt(bar))

	// a plain file where the output directory should be does not count
	require.NoError(t, os.MkdirAll(filepath.Join(bar.Dir, "dist"), 0755))
	require.NoError(t, os.WriteFile(bar.OutputPath(), []byte{}, 0644))
	assert.False(t, IsBuilt(bar))

	// deleting the marker forces a rebuild
	require.NoError(t, os.RemoveAll(foo.OutputPath()))
	assert.False(t, IsBuilt(foo))
}
