package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"shopdesk/models"
)

// Catalog is the read-only set of vehicles the shop services.
type Catalog struct {
	vehicles []models.VehicleRecord
	// Distinct lowercase model names, sorted so fuzzy-match tie-breaks are
	// deterministic across runs.
	modelNames []string
}

type catalogFile struct {
	Vehicles []models.VehicleRecord `yaml:"vehicles"`
}

// Load reads the vehicle catalog from a YAML file. A missing or empty
// catalog is a startup error, not something to recover from per-request.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if len(f.Vehicles) == 0 {
		return nil, fmt.Errorf("catalog: %s contains no vehicles", path)
	}
	return New(f.Vehicles), nil
}

// New builds a catalog from an in-memory vehicle list.
func New(vehicles []models.VehicleRecord) *Catalog {
	c := &Catalog{vehicles: append([]models.VehicleRecord(nil), vehicles...)}
	seen := make(map[string]bool, len(vehicles))
	for _, v := range c.vehicles {
		name := lower(v.Model)
		if !seen[name] {
			seen[name] = true
			c.modelNames = append(c.modelNames, name)
		}
	}
	sort.Strings(c.modelNames)
	return c
}

// Vehicles returns a copy of all catalog entries.
func (c *Catalog) Vehicles() []models.VehicleRecord {
	return append([]models.VehicleRecord(nil), c.vehicles...)
}
