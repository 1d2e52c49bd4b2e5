package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tgreenwood/leaguetables/internal/model"
)

// Storage handles persistence of extracted datasets.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if
// needed. A leading ~/ expands to the home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// Path returns the on-disk path for a named dataset.
func (s *Storage) Path(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.dataDir, name)
}

// Load reads a named dataset. A missing file yields an empty dataset, so a
// first run and a resumed run take the same path.
func (s *Storage) Load(name string) (*model.Dataset, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDataset(), nil
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds.Seasons == nil {
		ds.Seasons = make(map[string]model.SeasonData)
	}
	return &ds, nil
}

// LoadFile reads a dataset from an explicit path outside the data
// directory, for merge inputs supplied on the command line.
func LoadFile(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if ds.Seasons == nil {
		ds.Seasons = make(map[string]model.SeasonData)
	}
	return &ds, nil
}

// Save writes a named dataset as indented JSON. The write replaces the
// whole file; callers invoke it after each completed season unit.
func (s *Storage) Save(name string, ds *model.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}
