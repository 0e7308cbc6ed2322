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
	"github.com/frontside/embersite/kernel/helpers"
	"github.com/frontside/embersite/kernel/mcp"
	"github.com/frontside/embersite/kernel/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(NewMCPServerCommand())
}

func NewMCPServerCommand() *cobra.Command {
	mcpCmd := &MCPServerCommand{}

	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Start MCP server exposing the site's Ember apps",
		Long: `Start an MCP (Model Context Protocol) server that builds the site's
Ember apps and exposes them to AI assistants.

The server provides tools for:
  - list_apps: List the discovered Ember apps and their build status
  - stylesheet_tags: Render the stylesheet link tags for an app
  - script_tags: Render the script tags for an app

And resources:
  - embersite://resources: The bundles published by the build pass`,
		Args: cobra.NoArgs,
		RunE: mcpCmd.run,
	}

	mcpCmd.addFlags(cmd)
	cmd.Flags().BoolVar(&mcpCmd.UseMemoryStore, "memory", false, "publish into memory instead of the build directory")
	cmd.Flags().StringVarP(&mcpCmd.OutDir, "out", "o", "build", "build directory, relative to the site root")

	return cmd
}

type MCPServerCommand struct {
	siteOptions
	UseMemoryStore bool
	OutDir         string
}

func (m *MCPServerCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := m.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, closeMetrics, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeMetrics()

	var resourceStore store.ResourceStore
	if m.UseMemoryStore {
		logrus.Info("using in-memory store")
		resourceStore = store.NewMemoryStore()
	} else {
		resourceStore = store.NewFileStore(siteRelative(cfg, m.OutDir))
	}

	if _, err := engine.NewReconciler(engine.NewExtension(registry), resourceStore).Reconcile(cmd.Context()); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	logrus.Info("starting MCP server on stdio...")
	server := mcp.NewEmbersiteMCPServer(registry, helpers.New(registry, nil), resourceStore)
	return server.ServeStdio()
}
