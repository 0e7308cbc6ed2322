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
	"os"
	"path/filepath"

	"github.com/frontside/embersite/kernel/engine"
	"github.com/frontside/embersite/kernel/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	RootCmd.AddCommand(NewListCommand())
}

func NewListCommand() *cobra.Command {
	listCmd := &ListCommand{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the Ember apps in the site and whether they are built",
		Args:  cobra.NoArgs,
		RunE:  listCmd.list,
	}

	listCmd.addFlags(cmd)

	return cmd
}

type ListCommand struct {
	siteOptions
}

func (l *ListCommand) list(cmd *cobra.Command, args []string) error {
	cfg, err := l.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := engine.NewRegistry(cfg, nil)
	apps, err := registry.Discover()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.SetStyle(table.StyleColoredBright)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"App", "Declared Name", "Built", "Output"})
	for _, app := range apps {
		t.AppendRow(table.Row{app.Basename(), app.Label(), engine.IsBuilt(app), relativeOutput(cfg, app)})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d app(s)", len(apps))})
	t.Render()

	return nil
}

func relativeOutput(cfg *model.Config, app *model.App) string {
	if rel, err := filepath.Rel(cfg.Root, app.OutputPath()); err == nil {
		return rel
	}
	return app.OutputPath()
}

// siteRelative resolves p against the site root unless it is absolute.
func siteRelative(cfg *model.Config, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.Root, p)
}
