// Package helpers renders the markup templates use to pull an Ember app's
// bundles into a page.
package helpers

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/frontside/embersite/kernel/engine"
	"github.com/frontside/embersite/kernel/model"
)

// URLFor maps a resource destination path to the URL a page links to.
type URLFor func(destinationPath string) string

// PrefixURLFor serves resources below prefix, which may be a path such as "/"
// or an absolute asset host URL.
func PrefixURLFor(prefix string) URLFor {
	prefix = strings.TrimRight(prefix, "/")
	return func(destinationPath string) string {
		return prefix + "/" + strings.TrimLeft(destinationPath, "/")
	}
}

type Helpers struct {
	Registry *engine.Registry
	URLFor   URLFor
}

func New(registry *engine.Registry, urlFor URLFor) *Helpers {
	if urlFor == nil {
		urlFor = PrefixURLFor(registry.Config.URLPrefix)
	}
	return &Helpers{Registry: registry, URLFor: urlFor}
}

// StylesheetTags links the vendor and app stylesheets of the named app.
//
//	{{ ember_stylesheet_link_tags "my-sweet-ember-app" }}
func (h *Helpers) StylesheetTags(appName string) (string, error) {
	return h.tags(appName, []model.Role{model.VendorStyle, model.AppStyle}, `<link rel="stylesheet" href="%s"/>`)
}

// ScriptTags loads the vendor and app scripts of the named app.
//
//	{{ ember_javascript_tags "my-sweet-ember-app" }}
func (h *Helpers) ScriptTags(appName string) (string, error) {
	return h.tags(appName, []model.Role{model.VendorScript, model.AppScript}, `<script src="%s"></script>`)
}

func (h *Helpers) tags(appName string, roles []model.Role, format string) (string, error) {
	var b strings.Builder
	err := h.Registry.WithApp(appName, func(app *model.App) error {
		for _, role := range roles {
			resource, err := engine.Resolve(app, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(&b, format, template.HTMLEscapeString(h.URLFor(resource.DestinationPath)))
			b.WriteString("\n")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// FuncMap exposes the helpers to html/template. A lookup failure aborts the
// template execution.
func (h *Helpers) FuncMap() template.FuncMap {
	return template.FuncMap{
		"ember_stylesheet_link_tags": func(appName string) (template.HTML, error) {
			markup, err := h.StylesheetTags(appName)
			return template.HTML(markup), err
		},
		"ember_javascript_tags": func(appName string) (template.HTML, error) {
			markup, err := h.ScriptTags(appName)
			return template.HTML(markup), err
		},
	}
}
