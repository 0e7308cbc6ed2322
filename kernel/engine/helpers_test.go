package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/frontside/embersite/kernel/model"
	"github.com/stretchr/testify/require"
)

// fakeInvoker records builds and, unless told to fail, writes the given files
// into the app's output directory.
type fakeInvoker struct {
	mu     sync.Mutex
	calls  map[string]int
	files  []string
	fail   map[string]error
	noDist bool
}

func newFakeInvoker(files ...string) *fakeInvoker {
	return &fakeInvoker{calls: map[string]int{}, fail: map[string]error{}, files: files}
}

func (f *fakeInvoker) Build(ctx context.Context, app *model.App) (*BuildResult, error) {
	f.mu.Lock()
	f.calls[app.Basename()]++
	err := f.fail[app.Basename()]
	f.mu.Unlock()

	if err != nil {
		return &BuildResult{}, err
	}
	if f.noDist {
		return &BuildResult{}, nil
	}
	name, _ := app.Name()
	if err := os.MkdirAll(app.OutputPath(), 0755); err != nil {
		return nil, err
	}
	for _, file := range f.files {
		file = filepath.Join(app.OutputPath(), strings.ReplaceAll(file, "{name}", name))
		if err := os.WriteFile(file, []byte(file), 0644); err != nil {
			return nil, err
		}
	}
	return &BuildResult{Output: []byte("ok")}, nil
}

func (f *fakeInvoker) count(app string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[app]
}

func (f *fakeInvoker) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type siteFixture struct {
	t    *testing.T
	root string
	cfg  *model.Config
}

func newSite(t *testing.T) *siteFixture {
	t.Helper()
	root := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Root = root
	require.NoError(t, os.MkdirAll(cfg.NamespaceDir(), 0755))
	return &siteFixture{t: t, root: root, cfg: cfg}
}

// addApp creates <namespace>/<dir> with a manifest declaring name and, when
// dist is non-nil, an output directory holding those files.
func (s *siteFixture) addApp(dir, name string, dist []string) string {
	s.t.Helper()
	appDir := filepath.Join(s.cfg.NamespaceDir(), dir)
	require.NoError(s.t, os.MkdirAll(appDir, 0755))

	manifest, err := json.Marshal(map[string]string{"name": name, "version": "0.0.0"})
	require.NoError(s.t, err)
	require.NoError(s.t, os.WriteFile(filepath.Join(appDir, "package.json"), manifest, 0644))

	if dist != nil {
		outputDir := filepath.Join(appDir, "dist", "assets")
		require.NoError(s.t, os.MkdirAll(outputDir, 0755))
		for _, file := range dist {
			require.NoError(s.t, os.WriteFile(filepath.Join(outputDir, file), []byte(file), 0644))
		}
	}
	return appDir
}

// fooBar is the two-app site: foo is built, bar is not.
func (s *siteFixture) fooBar() {
	s.addApp("foo", "foo-app", []string{"vendor.abc123.js", "vendor.abc123.css", "foo-app.def456.js", "foo-app.def456.css"})
	s.addApp("bar", "bar", nil)
}

var standardDist = []string{"vendor.111.js", "vendor.111.css", "{name}.222.js", "{name}.222.css"}
