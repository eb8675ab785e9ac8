package flange

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Query identifies the flange to look up in a catalog
type Query struct {
	NominalBoreMm float64
	Standard      string
	PressureClass string
}

// Catalog supplies flange records. A miss returns nil, nil.
type Catalog interface {
	Lookup(ctx context.Context, q Query) (*CatalogRecord, error)
}

type catalogEntry struct {
	NominalBoreMm float64 `yaml:"nominalBoreMm"`
	Standard      string  `yaml:"standard"`
	PressureClass string  `yaml:"pressureClass"`
	CatalogRecord `yaml:",inline"`
}

// FileCatalog serves records from an exported catalog file (JSON or YAML
// list of entries). Reload may be called while lookups are in progress.
type FileCatalog struct {
	path string

	mu      sync.RWMutex
	entries []catalogEntry
}

var _ Catalog = (*FileCatalog)(nil)

// LoadFileCatalog reads the catalog at path
func LoadFileCatalog(path string) (*FileCatalog, error) {
	c := &FileCatalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the file backing the catalog
func (c *FileCatalog) Path() string {
	return c.path
}

// Len returns the number of entries
func (c *FileCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reload re-reads the catalog file. On error the previous entries stay.
func (c *FileCatalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read flange catalog: %w", err)
	}

	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse flange catalog %s: %w", c.path, err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Lookup finds the entry with the exact nominal bore and matching standard.
// The pressure class is only compared when the query sets one.
func (c *FileCatalog) Lookup(ctx context.Context, q Query) (*CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries {
		if e.NominalBoreMm != q.NominalBoreMm {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(e.Standard), strings.TrimSpace(q.Standard)) {
			continue
		}
		if q.PressureClass != "" && !strings.EqualFold(e.PressureClass, q.PressureClass) {
			continue
		}
		record := e.CatalogRecord
		return &record, nil
	}
	return nil, nil
}
