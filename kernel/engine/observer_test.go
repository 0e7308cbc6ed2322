package engine

import (
	"sync"
	"time"

	"github.com/frontside/embersite/kernel/model"
)

type recordingObserver struct {
	mu   sync.Mutex
	apps []string
	errs []error
}

func (o *recordingObserver) BuildFinished(app *model.App, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.apps = append(o.apps, app.Basename())
	o.errs = append(o.errs, err)
}
