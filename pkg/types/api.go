package types

// ServerMetadata represents the server metadata response.
type ServerMetadata struct {
	Version string `json:"version"`
}

// CreateServerInput is the input structure for creating a server record via
// the dashboard API. It is also the basis for the JSON body of PUT updates.
type CreateServerInput struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`

	// Config optionally carries the full server config document to mirror
	// into the record's config blob.
	Config *ServerConfig `json:"config,omitempty"`
}

// BuildServerInput is the input structure for the build endpoint. Merge
// sources are applied in a fixed order: config file, models, routes, manual
// tools, boost.
type BuildServerInput struct {
	Name          string           `json:"name"`
	Version       string           `json:"version,omitempty"`
	Description   string           `json:"description,omitempty"`
	ConfigFile    string           `json:"config_file,omitempty"`
	Models        []string         `json:"models,omitempty"`
	IncludeRoutes bool             `json:"include_routes,omitempty"`
	RouteFilter   string           `json:"route_filter,omitempty"`
	ManualTools   []ToolDescriptor `json:"manual_tools,omitempty"`
	Resources     []any            `json:"resources,omitempty"`
	Prompts       []any            `json:"prompts,omitempty"`
	IncludeBoost  bool             `json:"include_boost,omitempty"`
	Save          bool             `json:"save,omitempty"`
}

// ValidationResult is the response of the validate endpoint and command.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ErrorEnvelope is the JSON error body returned by the API. It carries the
// same category/code/suggestions triple that the CLI prints.
type ErrorEnvelope struct {
	Error       string   `json:"error"`
	Code        string   `json:"code"`
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions,omitempty"`
}
