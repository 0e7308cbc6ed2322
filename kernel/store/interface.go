package store

import (
	"context"

	"github.com/frontside/embersite/kernel/model"
)

// ResourceStore receives the resources published by a build pass.
type ResourceStore interface {
	Publish(ctx context.Context, resources []model.Resource) error
	List() ([]model.Resource, error)
}
