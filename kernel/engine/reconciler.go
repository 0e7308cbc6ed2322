package engine

import (
	"context"

	"github.com/frontside/embersite/kernel/model"
	"github.com/frontside/embersite/kernel/store"
	"github.com/sirupsen/logrus"
)

type Result struct {
	Discovered int
	Built      int
	UpToDate   int
	Published  []model.Resource
}

// Reconciler drives one full site build pass: build what is missing, resolve
// every bundle and hand the result to a store.
type Reconciler struct {
	Extension *Extension
	Store     store.ResourceStore
}

func NewReconciler(ext *Extension, s store.ResourceStore) *Reconciler {
	return &Reconciler{Extension: ext, Store: s}
}

func (r *Reconciler) Reconcile(ctx context.Context) (*Result, error) {
	if err := r.Extension.AfterConfiguration(ctx); err != nil {
		return nil, err
	}

	resources, err := r.Extension.ManipulateResourceList(nil)
	if err != nil {
		return nil, err
	}

	if err := r.Store.Publish(ctx, resources); err != nil {
		return nil, err
	}

	registry := r.Extension.Registry
	result := &Result{Discovered: len(registry.Apps()), Published: resources}
	for _, app := range registry.Apps() {
		if status, found := registry.Status(app.Basename()); found {
			switch status.State {
			case Built:
				result.Built++
			case UpToDate:
				result.UpToDate++
			}
		}
	}

	logrus.Infof("published %d resource(s) for %d Ember app(s)", len(resources), result.Discovered)
	return result, nil
}
