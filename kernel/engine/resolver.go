package engine

import (
	"os"
	"path"
	"path/filepath"

	"github.com/frontside/embersite/kernel/model"
	"github.com/moby/patternmatcher"
	"github.com/pkg/errors"
)

// Resolve finds the output file for role and turns it into a site resource.
// Entries are tried in lexical order, so when stale bundles from earlier
// builds are still around the lexically smallest match wins.
func Resolve(app *model.App, role model.Role) (model.Resource, error) {
	name, err := app.Name()
	if err != nil {
		return model.Resource{}, err
	}
	pattern := role.Pattern(name)

	matcher, err := patternmatcher.New([]string{pattern})
	if err != nil {
		return model.Resource{}, errors.Wrapf(err, "invalid %s pattern '%s'", role, pattern)
	}

	outputDir := app.OutputPath()
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return model.Resource{}, errors.Wrapf(err, "unable to list build output of Ember app '%s'", app.Basename())
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := matcher.MatchesOrParentMatches(entry.Name())
		if err != nil {
			return model.Resource{}, errors.Wrapf(err, "unable to match '%s'", entry.Name())
		}
		if matched {
			return newResource(app, role, entry.Name())
		}
	}

	return model.Resource{}, &model.AssetNotFoundError{
		App:     app.Basename(),
		Role:    role,
		Pattern: pattern,
		Dir:     outputDir,
	}
}

func newResource(app *model.App, role model.Role, fileName string) (model.Resource, error) {
	source, err := filepath.EvalSymlinks(filepath.Join(app.OutputPath(), fileName))
	if err != nil {
		return model.Resource{}, errors.Wrapf(err, "unable to resolve '%s'", fileName)
	}
	source, err = filepath.Abs(source)
	if err != nil {
		return model.Resource{}, err
	}
	return model.Resource{
		App:             app.Basename(),
		Role:            role,
		SourcePath:      source,
		DestinationPath: DestinationPath(app, fileName),
	}, nil
}

// DestinationPath is where a bundle lands in the built site:
// <namespace>/<app dir>/<file name>, always slash separated.
func DestinationPath(app *model.App, fileName string) string {
	return path.Join(filepath.ToSlash(app.Namespace), app.Basename(), fileName)
}
