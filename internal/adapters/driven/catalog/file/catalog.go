// Package file implements the YAML source catalog.
//
// The catalog file declares the external event providers Vilabot queries.
// Load parses the file into shape-valid definitions; content validation
// (duplicate names, selector contracts) happens inside the registry.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.SourceCatalog = (*Catalog)(nil)

// catalogFile mirrors the YAML document root.
type catalogFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

// sourceEntry mirrors one source block in the catalog.
// A source is disabled unless the catalog enables it explicitly.
type sourceEntry struct {
	Name              string            `yaml:"name"`
	Kind              string            `yaml:"kind"`
	BaseURL           string            `yaml:"base_url"`
	SearchURLTemplate string            `yaml:"search_url_template"`
	Selectors         map[string]string `yaml:"selectors"`
	Enabled           bool              `yaml:"enabled"`
}

// Catalog loads source definitions from a YAML file on disk.
type Catalog struct {
	path string
}

// NewCatalog creates a catalog backed by the given file.
// If path is empty, defaults to ~/.vilabot/sources.yml.
func NewCatalog(path string) (*Catalog, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".vilabot", "sources.yml")
	}

	return &Catalog{path: path}, nil
}

// Load parses and returns all source definitions in declaration order.
// A missing catalog file is not an error; it yields an empty definition set
// so a fresh install can run before any sources are configured.
func (c *Catalog) Load() ([]domain.SourceDefinition, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read source catalog %s: %w", c.path, err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse source catalog %s: %w", c.path, err)
	}

	definitions := make([]domain.SourceDefinition, 0, len(doc.Sources))
	for _, entry := range doc.Sources {
		definitions = append(definitions, domain.SourceDefinition{
			Name:              entry.Name,
			Kind:              domain.FetchKind(entry.Kind),
			BaseURL:           entry.BaseURL,
			SearchURLTemplate: entry.SearchURLTemplate,
			Selectors:         entry.Selectors,
			Enabled:           entry.Enabled,
		})
	}

	return definitions, nil
}

// Path returns the catalog file path.
func (c *Catalog) Path() string {
	return c.path
}
