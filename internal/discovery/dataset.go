package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const (
	DefaultDatasetPath = "data/samples/grants_sample.json"

	opLoadDataset = "discovery.load_dataset"
)

// Dataset is the bundled grant list served in mock mode. It is read from disk
// on first use and never mutated afterwards; a failed load is retried on the
// next call.
type Dataset struct {
	mu     sync.RWMutex
	path   string
	grants []model.Grant
	loaded bool
}

func NewDataset(path string) *Dataset {
	if path == "" {
		path = DefaultDatasetPath
	}
	return &Dataset{path: path}
}

func (d *Dataset) Path() string {
	return d.path
}

// Grants returns copies of the dataset entries in file order.
func (d *Dataset) Grants() ([]model.Grant, error) {
	d.mu.RLock()
	if d.loaded {
		out := cloneGrants(d.grants)
		d.mu.RUnlock()
		return out, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loaded {
		grants, err := readDataset(d.path)
		if err != nil {
			return nil, err
		}
		d.grants = grants
		d.loaded = true
	}
	return cloneGrants(d.grants), nil
}

func readDataset(path string) ([]model.Grant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ConfigurationError(opLoadDataset, fmt.Sprintf("grant dataset not found at %s", path))
		}
		return nil, fmt.Errorf("reading grant dataset %s: %w", path, err)
	}

	var grants []model.Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, domain.DataShapeError(opLoadDataset, fmt.Sprintf("grant dataset %s is not a list of grants: %v", path, err))
	}
	for i := range grants {
		grants[i].ApplyDefaults()
	}
	return grants, nil
}

func cloneGrants(in []model.Grant) []model.Grant {
	out := make([]model.Grant, len(in))
	for i, g := range in {
		out[i] = g.Clone()
	}
	return out
}
