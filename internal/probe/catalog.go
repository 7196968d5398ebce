package probe

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource names used by the repositories.
const (
	DamageTable       = "damage.table"
	DamageBucket      = "damage.bucket"
	MaintenanceTable  = "maintenance.table"
	MaintenanceBucket = "maintenance.bucket"
	OrderTable        = "order.table"
	FuelTable         = "fuel.table"
	FuelBucket        = "fuel.bucket"
)

//go:embed adapters.yaml
var defaultCatalog []byte

// Catalog is the ordered candidate list of every resource.
type Catalog struct {
	Resources []Resource `yaml:"resources" json:"resources"`
}

// DefaultCatalog parses the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file, or the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("probe: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("probe: parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks names are unique and every resource has at least one target.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Resources))
	for _, r := range c.Resources {
		if r.Name == "" {
			return fmt.Errorf("probe: catalog resource without name")
		}
		if seen[r.Name] {
			return fmt.Errorf("probe: catalog resource %q listed twice", r.Name)
		}
		seen[r.Name] = true

		if len(r.Candidates) == 0 {
			return fmt.Errorf("probe: resource %q has no candidates", r.Name)
		}
		for i, cand := range r.Candidates {
			if cand.Target == "" {
				return fmt.Errorf("probe: resource %q candidate %d has no target", r.Name, i)
			}
		}
	}
	return nil
}

// Lookup returns a resource by name.
func (c *Catalog) Lookup(name string) (Resource, bool) {
	for _, r := range c.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Require is Lookup for resources the caller cannot run without.
func (c *Catalog) Require(names ...string) error {
	for _, n := range names {
		if _, ok := c.Lookup(n); !ok {
			return fmt.Errorf("probe: catalog has no resource %q", n)
		}
	}
	return nil
}

// Marshal renders the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
