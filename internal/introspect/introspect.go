// Package introspect exposes read-only structural facts about an
// application's data-model entities and HTTP routes. The generation pipeline
// consumes these facts through the ModelIntrospector and RouteIntrospector
// interfaces; it never performs reflection itself. The in-repo implementation
// is a declared schema registry: the host application registers entity
// schemas and routes explicitly, or loads them from a schema file.
package introspect

import (
	"sync"

	"github.com/mcpforge/mcpforge/internal/errs"
)

// ColumnInfo describes one table column of an entity.
type ColumnInfo struct {
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
}

// EntityAnalysis is the transient result of analyzing one entity. It is
// created per generation call and discarded once tool descriptors have been
// produced.
type EntityAnalysis struct {
	// Entity is the identifier the analysis was requested for.
	Entity string

	// ShortName is the entity's display name, e.g. "UserProfile".
	ShortName string

	Table string

	// Fillable lists the entity's mutable fields in declaration order.
	Fillable []string

	// Casts maps field names to declared runtime casts, if any.
	Casts map[string]string

	Columns map[string]ColumnInfo

	Relationships []string
	PrimaryKey    string
	Timestamps    bool
}

// RouteParam describes one handler parameter of a route.
type RouteParam struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable"`
	Default  any    `json:"default,omitempty" yaml:"default"`
}

// RouteAnalysis is the transient result of analyzing one registered route.
// Methods never contain HEAD or OPTIONS.
type RouteAnalysis struct {
	URI        string       `json:"uri" yaml:"uri"`
	Methods    []string     `json:"methods" yaml:"methods"`
	Name       string       `json:"name,omitempty" yaml:"name"`
	Controller string       `json:"controller,omitempty" yaml:"controller"`
	Action     string       `json:"action,omitempty" yaml:"action"`
	Params     []RouteParam `json:"params,omitempty" yaml:"params"`
}

// ModelIntrospector resolves an entity identifier into a fully-populated
// analysis value.
type ModelIntrospector interface {
	Analyze(entity string) (*EntityAnalysis, error)
}

// RouteIntrospector returns the analysis of every registered route.
type RouteIntrospector interface {
	Routes() ([]RouteAnalysis, error)
}

// EntitySchema is the declared schema of one entity, registered by the host
// application.
type EntitySchema struct {
	Name          string                `json:"name" yaml:"name"`
	Table         string                `json:"table" yaml:"table"`
	Fillable      []string              `json:"fillable" yaml:"fillable"`
	Casts         map[string]string     `json:"casts,omitempty" yaml:"casts"`
	Columns       map[string]ColumnInfo `json:"columns" yaml:"columns"`
	Relationships []string              `json:"relationships,omitempty" yaml:"relationships"`
	PrimaryKey    string                `json:"primary_key,omitempty" yaml:"primary_key"`
	Timestamps    bool                  `json:"timestamps,omitempty" yaml:"timestamps"`
}

// SchemaRegistry is a declared-schema ModelIntrospector. Entities are
// registered under a unique identifier; identifiers registered as opaque are
// known types that are not data-model entities.
type SchemaRegistry struct {
	mu       sync.RWMutex
	entities map[string]EntitySchema
	opaque   map[string]struct{}
}

// NewSchemaRegistry creates an empty schema registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		entities: make(map[string]EntitySchema),
		opaque:   make(map[string]struct{}),
	}
}

// Register declares an introspectable entity schema under the given identifier.
func (r *SchemaRegistry) Register(entity string, schema EntitySchema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[entity] = schema
}

// RegisterOpaque declares a known type that is not a data-model entity.
// Analyzing such an identifier fails with NotAnEntityError instead of
// EntityNotFoundError.
func (r *SchemaRegistry) RegisterOpaque(entity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opaque[entity] = struct{}{}
}

// Entities returns the identifiers of all registered entities.
func (r *SchemaRegistry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	return names
}

// Analyze resolves an entity identifier into an analysis value.
func (r *SchemaRegistry) Analyze(entity string) (*EntityAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.entities[entity]
	if !ok {
		if _, known := r.opaque[entity]; known {
			return nil, &errs.NotAnEntityError{Entity: entity}
		}
		return nil, &errs.EntityNotFoundError{Entity: entity}
	}

	pk := schema.PrimaryKey
	if pk == "" {
		pk = "id"
	}

	return &EntityAnalysis{
		Entity:        entity,
		ShortName:     schema.Name,
		Table:         schema.Table,
		Fillable:      schema.Fillable,
		Casts:         schema.Casts,
		Columns:       schema.Columns,
		Relationships: schema.Relationships,
		PrimaryKey:    pk,
		Timestamps:    schema.Timestamps,
	}, nil
}

// RouteRegistry is a declared-route RouteIntrospector.
type RouteRegistry struct {
	mu     sync.RWMutex
	routes []RouteAnalysis
}

// NewRouteRegistry creates an empty route registry.
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{}
}

// Register adds a route analysis to the registry. HEAD and OPTIONS verbs are
// filtered out at registration time.
func (r *RouteRegistry) Register(route RouteAnalysis) {
	route.Methods = filterMethods(route.Methods)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns all registered routes in registration order.
func (r *RouteRegistry) Routes() ([]RouteAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RouteAnalysis, len(r.routes))
	copy(out, r.routes)
	return out, nil
}

func filterMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		if m == "HEAD" || m == "OPTIONS" {
			continue
		}
		out = append(out, m)
	}
	return out
}
