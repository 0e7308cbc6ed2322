package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/frontside/embersite/kernel/model"
)

const (
	stateDirName      = ".embersite"
	resourcesFileName = "resources.json"
)

// FileStore copies published resources into a build directory at their
// destination paths and records what the last pass published in
// .embersite/resources.json, replacing any earlier record.
type FileStore struct {
	BuildDir string
	mu       sync.RWMutex
}

func NewFileStore(buildDir string) *FileStore {
	return &FileStore{BuildDir: buildDir}
}

func (s *FileStore) Publish(ctx context.Context, resources []model.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, resource := range resources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.copyResource(resource); err != nil {
			return err
		}
	}

	return s.saveUnsafe(resources)
}

// List returns the resources of the most recent Publish into the build directory.
func (s *FileStore) List() ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listUnsafe()
}

func (s *FileStore) resourcesPath() string {
	return filepath.Join(s.BuildDir, stateDirName, resourcesFileName)
}

func (s *FileStore) copyResource(resource model.Resource) error {
	target := filepath.Join(s.BuildDir, filepath.FromSlash(resource.DestinationPath))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	in, err := os.Open(resource.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", resource.SourcePath, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", resource.SourcePath, err)
	}
	return out.Close()
}

func (s *FileStore) listUnsafe() ([]model.Resource, error) {
	data, err := os.ReadFile(s.resourcesPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	var resources []model.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to parse resources: %w", err)
	}
	return resources, nil
}

func (s *FileStore) saveUnsafe(resources []model.Resource) error {
	resourcesPath := s.resourcesPath()

	if err := os.MkdirAll(filepath.Dir(resourcesPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}

	if err := os.WriteFile(resourcesPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write resources: %w", err)
	}

	return nil
}
