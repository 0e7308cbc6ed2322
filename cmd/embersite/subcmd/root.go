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
	"github.com/frontside/embersite/kernel/engine"
	"github.com/frontside/embersite/kernel/loader"
	"github.com/frontside/embersite/kernel/metrics"
	"github.com/frontside/embersite/kernel/model"
	"github.com/michaelquigley/pfxlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "embersite",
	Short: "Build and publish the Ember apps embedded in a static site",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logrus.InfoLevel
		if verbose {
			level = logrus.DebugLevel
		}
		pfxlog.GlobalInit(level, pfxlog.DefaultOptions().SetTrimPrefix("github.com/frontside/"))
	},
	SilenceUsage: true,
}

var verbose bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func Execute() error {
	return RootCmd.Execute()
}

// siteOptions are the flags every command uses to locate the site.
type siteOptions struct {
	ConfigPath  string
	Root        string
	Parallelism int
}

func (o *siteOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ConfigPath, "config", "c", "", "path to embersite.yml (default <root>/embersite.yml)")
	cmd.Flags().StringVarP(&o.Root, "root", "r", ".", "site root directory, or where to find embersite.yml")
	cmd.Flags().IntVarP(&o.Parallelism, "parallel", "p", 0, "number of apps to build at once (default from config)")
}

func (o *siteOptions) loadConfig(cmd *cobra.Command) (*model.Config, error) {
	var cfg *model.Config
	var err error
	if o.ConfigPath != "" {
		cfg, err = loader.LoadConfig(o.ConfigPath)
	} else {
		cfg, err = loader.LoadSiteConfig(o.Root)
	}
	if err != nil {
		return nil, err
	}
	// --root only locates embersite.yml; the root it declares wins. With an
	// explicit --config, --root names the site root directly.
	if o.ConfigPath != "" && cmd.Flags().Changed("root") {
		cfg.Root = o.Root
	}
	if o.Parallelism > 0 {
		cfg.Parallelism = o.Parallelism
	}
	return cfg, nil
}

// newRegistry wires the configured toolchain and, when configured, build
// metrics into a fresh registry. The returned func releases the metrics client.
func newRegistry(cfg *model.Config) (*engine.Registry, func(), error) {
	invoker, err := engine.NewToolchainInvoker(cfg)
	if err != nil {
		return nil, nil, err
	}
	registry := engine.NewRegistry(cfg, invoker)

	closer := func() {}
	if cfg.Metrics != nil && cfg.Metrics.Influx != nil {
		observer, err := metrics.NewInfluxObserver(cfg.Metrics.Influx)
		if err != nil {
			return nil, nil, err
		}
		registry.Observer = observer
		closer = observer.Close
	}
	return registry, closer, nil
}
