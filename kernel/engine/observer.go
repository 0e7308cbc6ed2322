package engine

import (
	"time"

	"github.com/frontside/embersite/kernel/model"
)

// BuildObserver is told about every external build the registry runs.
type BuildObserver interface {
	BuildFinished(app *model.App, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) BuildFinished(*model.App, time.Duration, error) {}
