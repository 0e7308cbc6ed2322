package model

// Resource is a resolved build output registered with the site. Resources are
// recreated on every build pass.
type Resource struct {
	App             string `json:"app"`
	Role            Role   `json:"role"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
}
