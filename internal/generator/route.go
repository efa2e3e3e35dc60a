package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcpforge/mcpforge/internal/introspect"
	"github.com/mcpforge/mcpforge/pkg/types"
)

var uriParamPattern = regexp.MustCompile(`\{(\w+)\}`)

// RouteToolGenerator produces one tool descriptor per eligible registered
// route. Routes without a resolvable handler are filtered out, not errors.
type RouteToolGenerator struct {
	introspector introspect.RouteIntrospector
}

// NewRouteToolGenerator creates a generator backed by the given introspector.
func NewRouteToolGenerator(introspector introspect.RouteIntrospector) *RouteToolGenerator {
	return &RouteToolGenerator{introspector: introspector}
}

// GenerateFromRoutes produces tool descriptors for the given routes. If
// routes is nil, the introspector's full route table is used.
func (g *RouteToolGenerator) GenerateFromRoutes(routes []introspect.RouteAnalysis) ([]types.ToolDescriptor, error) {
	if routes == nil {
		analyzed, err := g.introspector.Routes()
		if err != nil {
			return nil, fmt.Errorf("failed to introspect routes: %w", err)
		}
		routes = analyzed
	}

	tools := make([]types.ToolDescriptor, 0, len(routes))
	for _, route := range routes {
		tool, ok := g.toolFromRoute(route)
		if !ok {
			continue
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// toolFromRoute builds a single descriptor for a route. Routes with no
// handler or no usable verb produce no tool.
func (g *RouteToolGenerator) toolFromRoute(route introspect.RouteAnalysis) (types.ToolDescriptor, bool) {
	if route.Controller == "" || len(route.Methods) == 0 {
		return types.ToolDescriptor{}, false
	}

	method := strings.ToLower(route.Methods[0])

	schema := types.ToolInputSchema{
		Type:       types.SchemaTypeObject,
		Properties: propertiesFromRoute(route),
	}
	if required := requiredFromRoute(route); len(required) > 0 {
		schema.Required = required
	}

	return types.ToolDescriptor{
		Name:        ToolNameFromRoute(route.Name, route.URI, route.Methods),
		Description: routeDescription(route),
		InputSchema: schema,
		Metadata: map[string]any{
			"uri":        route.URI,
			"method":     method,
			"controller": route.Controller,
			"action":     route.Action,
		},
	}, true
}

func routeDescription(route introspect.RouteAnalysis) string {
	if route.Name != "" {
		return titleRouteName(route.Name)
	}
	method := "GET"
	if len(route.Methods) > 0 {
		method = strings.ToUpper(route.Methods[0])
	}
	return fmt.Sprintf("%s request to %s", method, route.URI)
}

// propertiesFromRoute merges URI template parameters with handler parameters.
// URI params win on name collision and are always typed string.
func propertiesFromRoute(route introspect.RouteAnalysis) map[string]types.ToolProperty {
	properties := make(map[string]types.ToolProperty)

	for _, param := range uriParams(route.URI) {
		properties[param] = types.ToolProperty{
			Type:        types.SchemaTypeString,
			Description: TitleWords(param),
		}
	}

	for _, param := range route.Params {
		if _, exists := properties[param.Name]; exists {
			continue
		}
		p := types.ToolProperty{
			Type:        MapRuntimeType(param.Type),
			Description: TitleWords(param.Name),
		}
		if param.Nullable {
			p.Nullable = true
		}
		if param.Default != nil {
			p.Default = param.Default
		}
		properties[param.Name] = p
	}

	return properties
}

// requiredFromRoute collects required field names: URI params are always
// required, handler params are required unless nullable or defaulted.
func requiredFromRoute(route introspect.RouteAnalysis) []string {
	var required []string
	seen := make(map[string]struct{})

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		required = append(required, name)
	}

	for _, param := range uriParams(route.URI) {
		add(param)
	}
	for _, param := range route.Params {
		if !param.Nullable && param.Default == nil {
			add(param.Name)
		}
	}
	return required
}

func uriParams(uri string) []string {
	matches := uriParamPattern.FindAllStringSubmatch(uri, -1)
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}
