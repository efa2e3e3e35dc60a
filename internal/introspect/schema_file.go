package introspect

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML shape of a declared schema file. It lets a host
// application (or the CLI standalone) declare its entities and routes without
// linking against mcpforge as a library.
type schemaFile struct {
	Entities []schemaFileEntity `yaml:"entities"`
	Routes   []RouteAnalysis    `yaml:"routes"`
}

type schemaFileEntity struct {
	ID           string `yaml:"id"`
	EntitySchema `yaml:",inline"`
}

// LoadSchemaFile parses a declared schema file into a populated schema
// registry and route registry.
func LoadSchemaFile(fs afero.Fs, path string) (*SchemaRegistry, *RouteRegistry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	models := NewSchemaRegistry()
	for _, e := range sf.Entities {
		if e.ID == "" {
			return nil, nil, fmt.Errorf("schema file %s contains an entity without an id", path)
		}
		models.Register(e.ID, e.EntitySchema)
	}

	routes := NewRouteRegistry()
	for _, r := range sf.Routes {
		routes.Register(r)
	}

	return models, routes, nil
}
