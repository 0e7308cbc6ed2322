package engine

import "github.com/frontside/embersite/kernel/model"

// PublishAll resolves every role of every app, in app order and then role
// order. Callers append the result to the site's resource list once per pass;
// nothing here deduplicates.
func PublishAll(apps []*model.App) ([]model.Resource, error) {
	resources := make([]model.Resource, 0, len(apps)*len(model.Roles))
	for _, app := range apps {
		for _, role := range model.Roles {
			resource, err := Resolve(app, role)
			if err != nil {
				return nil, err
			}
			resources = append(resources, resource)
		}
	}
	return resources, nil
}
