package driven

import "github.com/vilabot/vilabot/internal/core/domain"

// SourceCatalog supplies the declarative source definitions at process
// start. Implementations parse a configuration file into shape-valid
// definitions; content validation (duplicate names, selector contracts)
// happens inside the registry, not here.
type SourceCatalog interface {
	// Load parses and returns all source definitions in declaration order.
	Load() ([]domain.SourceDefinition, error)

	// Path returns the catalog file path.
	Path() string
}
