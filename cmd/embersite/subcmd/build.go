/*
	(c) Copyright NetFoundry Inc. Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

	https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package subcmd

import (
	"fmt"

	"github.com/frontside/embersite/kernel/engine"
	"github.com/frontside/embersite/kernel/model"
	"github.com/frontside/embersite/kernel/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(NewBuildCommand())
}

func NewBuildCommand() *cobra.Command {
	buildCmd := &BuildCommand{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build missing Ember apps and publish their bundles into the site",
		Args:  cobra.NoArgs,
		RunE:  buildCmd.build,
	}

	buildCmd.addFlags(cmd)
	cmd.Flags().StringVar(&buildCmd.Sink, "sink", "file", "where to publish resources: memory, file or s3")
	cmd.Flags().StringVarP(&buildCmd.OutDir, "out", "o", "build", "build directory for the file sink, relative to the site root")
	cmd.Flags().BoolVar(&buildCmd.DryRun, "dry-run", false, "discover apps and report their build status without building")

	return cmd
}

type BuildCommand struct {
	siteOptions
	Sink   string
	OutDir string
	DryRun bool
}

func (b *BuildCommand) build(cmd *cobra.Command, args []string) error {
	cfg, err := b.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, closeMetrics, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeMetrics()

	if b.DryRun {
		apps, err := registry.Discover()
		if err != nil {
			return err
		}
		logrus.Infof("dry-run: found %d Ember app(s) in [%s]", len(apps), cfg.NamespaceDir())
		for _, app := range apps {
			logrus.Infof("  app '%s' (%s): built=%t", app.Basename(), app.Label(), engine.IsBuilt(app))
		}
		return nil
	}

	resourceStore, err := b.newStore(cfg)
	if err != nil {
		return err
	}

	reconciler := engine.NewReconciler(engine.NewExtension(registry), resourceStore)
	result, err := reconciler.Reconcile(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	logrus.Infof("build: %d app(s), built: %d, up to date: %d, published: %d",
		result.Discovered, result.Built, result.UpToDate, len(result.Published))
	for _, resource := range result.Published {
		logrus.Debugf("  %s -> %s", resource.SourcePath, resource.DestinationPath)
	}

	return nil
}

func (b *BuildCommand) newStore(cfg *model.Config) (store.ResourceStore, error) {
	switch b.Sink {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(siteRelative(cfg, b.OutDir)), nil
	case "s3":
		return store.NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown sink '%s'", b.Sink)
	}
}
