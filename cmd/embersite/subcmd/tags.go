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
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(NewTagsCommand())
}

func NewTagsCommand() *cobra.Command {
	tagsCmd := &TagsCommand{}

	cmd := &cobra.Command{
		Use:   "tags <app>",
		Short: "Print the markup that embeds an Ember app's bundles",
		Args:  cobra.ExactArgs(1),
		RunE:  tagsCmd.tags,
	}

	tagsCmd.addFlags(cmd)
	cmd.Flags().StringVarP(&tagsCmd.Kind, "kind", "k", "all", "which tags to print: styles, scripts or all")

	return cmd
}

type TagsCommand struct {
	siteOptions
	Kind string
}

func (tc *TagsCommand) tags(cmd *cobra.Command, args []string) error {
	if tc.Kind != "all" && tc.Kind != "styles" && tc.Kind != "scripts" {
		return fmt.Errorf("unknown kind '%s'", tc.Kind)
	}

	cfg, err := tc.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, closeMetrics, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeMetrics()

	if err := engine.NewExtension(registry).AfterConfiguration(cmd.Context()); err != nil {
		return err
	}

	h := helpers.New(registry, nil)
	out := cmd.OutOrStdout()
	if tc.Kind != "scripts" {
		markup, err := h.StylesheetTags(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, markup)
	}
	if tc.Kind != "styles" {
		markup, err := h.ScriptTags(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, markup)
	}
	return nil
}
