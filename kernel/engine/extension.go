package engine

import (
	"context"

	"github.com/frontside/embersite/kernel/model"
	"github.com/michaelquigley/pfxlog"
)

// Extension plugs the registry into a site build's lifecycle.
type Extension struct {
	Registry *Registry
}

func NewExtension(registry *Registry) *Extension {
	return &Extension{Registry: registry}
}

// AfterConfiguration runs once configuration is done and before the site's
// assets are finalized: it discovers the apps and builds the ones that have
// no output yet.
func (e *Extension) AfterConfiguration(ctx context.Context) error {
	apps, err := e.Registry.Discover()
	if err != nil {
		return err
	}
	for _, app := range apps {
		pfxlog.Logger().Infof("%s is built - %t", app.Label(), IsBuilt(app))
	}
	return e.Registry.EnsureBuilt(ctx, apps)
}

// ManipulateResourceList returns resources with every app's bundles appended.
func (e *Extension) ManipulateResourceList(resources []model.Resource) ([]model.Resource, error) {
	published, err := PublishAll(e.Registry.Apps())
	if err != nil {
		return nil, err
	}
	return append(resources, published...), nil
}
