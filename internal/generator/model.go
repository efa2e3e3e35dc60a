package generator

import (
	"fmt"

	"github.com/mcpforge/mcpforge/internal/introspect"
	"github.com/mcpforge/mcpforge/pkg/types"
)

const (
	defaultPage    = 1
	defaultPerPage = 15
)

// ModelToolGenerator produces the five canonical CRUD tool descriptors for an
// entity: list, show, create, update and delete.
type ModelToolGenerator struct {
	introspector introspect.ModelIntrospector
}

// NewModelToolGenerator creates a generator backed by the given introspector.
func NewModelToolGenerator(introspector introspect.ModelIntrospector) *ModelToolGenerator {
	return &ModelToolGenerator{introspector: introspector}
}

// GenerateFromModel resolves an entity identifier and returns its five CRUD
// tool descriptors in a fixed order: list, show, create, update, delete.
// It fails with EntityNotFoundError or NotAnEntityError when the identifier
// does not resolve to an introspectable entity.
func (g *ModelToolGenerator) GenerateFromModel(entity string) ([]types.ToolDescriptor, error) {
	analysis, err := g.introspector.Analyze(entity)
	if err != nil {
		return nil, err
	}

	base := ToolNameFromEntity(analysis.ShortName)

	return []types.ToolDescriptor{
		g.listTool(base, analysis),
		g.showTool(base, analysis),
		g.createTool(base, analysis),
		g.updateTool(base, analysis),
		g.deleteTool(base, analysis),
	}, nil
}

func (g *ModelToolGenerator) listTool(base string, a *introspect.EntityAnalysis) types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        base + "_list",
		Description: fmt.Sprintf("List all %s records", a.ShortName),
		InputSchema: types.ToolInputSchema{
			Type: types.SchemaTypeObject,
			Properties: map[string]types.ToolProperty{
				"page": {
					Type:        types.SchemaTypeInteger,
					Description: "Page number",
					Default:     defaultPage,
				},
				"per_page": {
					Type:        types.SchemaTypeInteger,
					Description: "Items per page",
					Default:     defaultPerPage,
				},
			},
		},
	}
}

func (g *ModelToolGenerator) showTool(base string, a *introspect.EntityAnalysis) types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        base + "_show",
		Description: fmt.Sprintf("Show a specific %s record", a.ShortName),
		InputSchema: idOnlySchema(a.ShortName),
	}
}

func (g *ModelToolGenerator) createTool(base string, a *introspect.EntityAnalysis) types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        base + "_create",
		Description: fmt.Sprintf("Create a new %s record", a.ShortName),
		InputSchema: types.ToolInputSchema{
			Type:       types.SchemaTypeObject,
			Properties: propertiesFromFillable(a),
		},
	}
}

func (g *ModelToolGenerator) updateTool(base string, a *introspect.EntityAnalysis) types.ToolDescriptor {
	properties := propertiesFromFillable(a)
	properties["id"] = types.ToolProperty{
		Type:        types.SchemaTypeInteger,
		Description: fmt.Sprintf("%s ID", a.ShortName),
	}
	return types.ToolDescriptor{
		Name:        base + "_update",
		Description: fmt.Sprintf("Update an existing %s record", a.ShortName),
		InputSchema: types.ToolInputSchema{
			Type:       types.SchemaTypeObject,
			Properties: properties,
			Required:   []string{"id"},
		},
	}
}

func (g *ModelToolGenerator) deleteTool(base string, a *introspect.EntityAnalysis) types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        base + "_delete",
		Description: fmt.Sprintf("Delete a %s record", a.ShortName),
		InputSchema: idOnlySchema(a.ShortName),
	}
}

func idOnlySchema(shortName string) types.ToolInputSchema {
	return types.ToolInputSchema{
		Type: types.SchemaTypeObject,
		Properties: map[string]types.ToolProperty{
			"id": {
				Type:        types.SchemaTypeInteger,
				Description: fmt.Sprintf("%s ID", shortName),
			},
		},
		Required: []string{"id"},
	}
}

// propertiesFromFillable builds schema properties for every mutable field of
// the entity. Fillable fields absent from the column map are skipped: the
// mutable-field list is not assumed to be a subset of the columns.
func propertiesFromFillable(a *introspect.EntityAnalysis) map[string]types.ToolProperty {
	properties := make(map[string]types.ToolProperty, len(a.Fillable))
	for _, field := range a.Fillable {
		column, ok := a.Columns[field]
		if !ok {
			continue
		}

		p := types.ToolProperty{
			Type:        MapColumnType(column.Type, a.Casts[field]),
			Description: TitleWords(field),
		}
		if column.Nullable {
			p.Nullable = true
		}
		properties[field] = p
	}
	return properties
}
