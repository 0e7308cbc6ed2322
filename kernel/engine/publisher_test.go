package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/frontside/embersite/kernel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishAll_TwoApps(t *testing.T) {
	site := newSite(t)
	site.fooBar()

	r := NewRegistry(site.cfg, newFakeInvoker(standardDist...))
	apps, err := r.Discover()
	require.NoError(t, err)
	require.NoError(t, r.EnsureBuilt(context.Background(), apps))

	resources, err := PublishAll(apps)
	require.NoError(t, err)
	require.Len(t, resources, 8)

	for i, resource := range resources {
		app := apps[i/4]
		assert.True(t, strings.HasPrefix(resource.DestinationPath, "ember-apps/"+app.Basename()+"/"), resource.DestinationPath)
		assert.Equal(t, model.Roles[i%4], resource.Role)
	}
	assert.Equal(t, "ember-apps/bar/bar.222.js", resources[3].DestinationPath)
	assert.Equal(t, "ember-apps/foo/foo-app.def456.js", resources[7].DestinationPath)
}

func TestPublishAll_StopsOnMissingAsset(t *testing.T) {
	site := newSite(t)
	site.addApp("foo", "foo-app", []string{"vendor.js", "vendor.css", "foo-app.js"})

	r := NewRegistry(site.cfg, newFakeInvoker())
	apps, err := r.Discover()
	require.NoError(t, err)

	_, err = PublishAll(apps)
	var notFound *model.AssetNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestPublishAll_NoApps(t *testing.T) {
	resources, err := PublishAll(nil)
	require.NoError(t, err)
	assert.Empty(t, resources)
}
