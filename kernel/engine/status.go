package engine

import (
	"os"

	"github.com/frontside/embersite/kernel/model"
)

// IsBuilt reports whether the app's output directory exists. It does not check
// that the output is complete or newer than the sources; deleting the
// directory is how a rebuild is forced.
func IsBuilt(app *model.App) bool {
	info, err := os.Stat(app.OutputPath())
	return err == nil && info.IsDir()
}
