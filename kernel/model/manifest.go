package model

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/oliveagle/jsonpath"
	"github.com/pkg/errors"
)

// ReadDeclaredName reads the manifest at path and returns the string found at
// namePath, a JSONPath expression such as "$.name".
func ReadDeclaredName(path, namePath string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ManifestReadError{Path: path, Err: err}
	}

	var manifest interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", &ManifestReadError{Path: path, Err: errors.Wrap(err, "unable to parse manifest")}
	}

	value, err := jsonpath.JsonPathLookup(manifest, namePath)
	if err != nil {
		return "", &ManifestReadError{Path: path, Err: errors.Wrapf(err, "unable to look up [%s]", namePath)}
	}

	name, ok := value.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return "", &ManifestReadError{Path: path, Err: errors.Errorf("[%s] is not a non-empty string", namePath)}
	}
	return name, nil
}
