package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frontside/embersite/kernel/engine"
	"github.com/frontside/embersite/kernel/helpers"
	"github.com/frontside/embersite/kernel/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const resourcesURI = "embersite://resources"

// EmbersiteMCPServer lets agents look up Ember apps and the markup that embeds
// them, using the registry of the current build pass.
type EmbersiteMCPServer struct {
	server   *server.MCPServer
	registry *engine.Registry
	helpers  *helpers.Helpers
	store    store.ResourceStore
}

func NewEmbersiteMCPServer(registry *engine.Registry, h *helpers.Helpers, s store.ResourceStore) *EmbersiteMCPServer {
	srv := server.NewMCPServer(
		"Embersite",
		"v1.0.0",
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
	)

	es := &EmbersiteMCPServer{
		server:   srv,
		registry: registry,
		helpers:  h,
		store:    s,
	}

	es.registerTools()
	es.registerResources()

	return es
}

func (es *EmbersiteMCPServer) ServeStdio() error {
	return server.ServeStdio(es.server)
}

func (es *EmbersiteMCPServer) registerTools() {
	es.server.AddTool(mcp.NewTool("list_apps",
		mcp.WithDescription("List the Ember apps discovered in the site"),
	), es.listAppsHandler)

	es.server.AddTool(mcp.NewTool("stylesheet_tags",
		mcp.WithDescription("Render the <link> tags for an Ember app's vendor and app stylesheets"),
		mcp.WithString("app",
			mcp.Description("Directory name of the Ember app"),
			mcp.Required(),
		),
	), es.stylesheetTagsHandler)

	es.server.AddTool(mcp.NewTool("script_tags",
		mcp.WithDescription("Render the <script> tags for an Ember app's vendor and app scripts"),
		mcp.WithString("app",
			mcp.Description("Directory name of the Ember app"),
			mcp.Required(),
		),
	), es.scriptTagsHandler)
}

func (es *EmbersiteMCPServer) registerResources() {
	resource := mcp.NewResource(resourcesURI, "Published Ember resources",
		mcp.WithResourceDescription("Every Ember bundle published into the site"),
		mcp.WithMIMEType("application/json"),
	)
	es.server.AddResource(resource, es.resourcesHandler)
}

type appInfo struct {
	Dir       string `json:"dir"`
	Name      string `json:"name"`
	Built     bool   `json:"built"`
	OutputDir string `json:"output_dir"`
}

func (es *EmbersiteMCPServer) listAppsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apps := es.registry.Apps()
	infos := make([]appInfo, 0, len(apps))
	for _, app := range apps {
		infos = append(infos, appInfo{
			Dir:       app.Basename(),
			Name:      app.Label(),
			Built:     engine.IsBuilt(app),
			OutputDir: app.OutputPath(),
		})
	}

	data, err := json.Marshal(map[string]any{"count": len(infos), "apps": infos})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal apps: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (es *EmbersiteMCPServer) stylesheetTagsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return es.tagsHandler(request, es.helpers.StylesheetTags)
}

func (es *EmbersiteMCPServer) scriptTagsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return es.tagsHandler(request, es.helpers.ScriptTags)
}

func (es *EmbersiteMCPServer) tagsHandler(request mcp.CallToolRequest, render func(string) (string, error)) (*mcp.CallToolResult, error) {
	appName, err := request.RequireString("app")
	if err != nil {
		return mcp.NewToolResultError("app argument is required"), nil
	}
	markup, err := render(appName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(markup), nil
}

func (es *EmbersiteMCPServer) resourcesHandler(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	resources, err := es.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	data, err := json.Marshal(map[string]any{"count": len(resources), "resources": resources})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resources: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourcesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
