package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/frontside/embersite/kernel/model"
	"github.com/michaelquigley/pfxlog"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type BuildState string

const (
	UpToDate BuildState = "up-to-date"
	Built    BuildState = "built"
	Failed   BuildState = "failed"
)

type BuildStatus struct {
	State    BuildState
	Duration time.Duration
	Err      error
}

// Registry holds the apps found by one discovery pass. Build one per site build
// and hand it to everything that needs to look apps up.
type Registry struct {
	Config   *model.Config
	Invoker  BuildInvoker
	Observer BuildObserver

	apps     []*model.App
	statuses cmap.ConcurrentMap[string, BuildStatus]
}

func NewRegistry(cfg *model.Config, invoker BuildInvoker) *Registry {
	return &Registry{
		Config:   cfg,
		Invoker:  invoker,
		Observer: nopObserver{},
		statuses: cmap.New[BuildStatus](),
	}
}

// Discover lists the immediate subdirectories of the namespace directory, in
// lexical order, and reads each one's manifest. Every call starts a new pass.
func (r *Registry) Discover() ([]*model.App, error) {
	root := r.Config.NamespaceDir()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list Ember apps in [%s]", root)
	}

	var apps []*model.App
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		app := model.NewApp(dir, r.Config)
		if _, err := app.Name(); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	r.apps = apps
	r.statuses.Clear()
	return apps, nil
}

// Apps returns the apps of the last discovery pass.
func (r *Registry) Apps() []*model.App {
	return r.apps
}

// EnsureBuilt builds every app whose output directory is missing. Builds run
// on up to Config.Parallelism workers; the first failure cancels the rest and
// is returned.
func (r *Registry) EnsureBuilt(ctx context.Context, apps []*model.App) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Config.Parallelism)

	for _, app := range apps {
		if IsBuilt(app) {
			r.statuses.Set(app.Basename(), BuildStatus{State: UpToDate})
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return r.build(ctx, app)
		})
	}
	return g.Wait()
}

func (r *Registry) build(ctx context.Context, app *model.App) error {
	name, _ := app.Name()
	pfxlog.Logger().Infof("Building Ember application %s in %s", name, app.Dir)

	start := time.Now()
	_, err := r.Invoker.Build(ctx, app)
	if err == nil && !IsBuilt(app) {
		err = &model.BuildFailure{
			App: name,
			Dir: app.Dir,
			Err: errors.Errorf("build finished without creating [%s]", app.OutputPath()),
		}
	}
	duration := time.Since(start)
	r.Observer.BuildFinished(app, duration, err)

	if err != nil {
		r.statuses.Set(app.Basename(), BuildStatus{State: Failed, Duration: duration, Err: err})
		return err
	}
	r.statuses.Set(app.Basename(), BuildStatus{State: Built, Duration: duration})
	pfxlog.Logger().WithField("app", app.Basename()).Infof("built in %s", duration.Round(time.Millisecond))
	return nil
}

// Status is the outcome recorded for an app by the last EnsureBuilt call.
func (r *Registry) Status(appName string) (BuildStatus, bool) {
	return r.statuses.Get(appName)
}

// FindByName looks an app up by directory basename. The declared manifest name
// is not considered.
func (r *Registry) FindByName(appName string) (*model.App, error) {
	for _, app := range r.apps {
		if app.Basename() == appName {
			return app, nil
		}
	}
	return nil, &model.AppNotFoundError{Name: appName, Namespace: r.Config.Namespace}
}

func (r *Registry) WithApp(appName string, f func(app *model.App) error) error {
	app, err := r.FindByName(appName)
	if err != nil {
		return err
	}
	return f(app)
}
