package types

import "fmt"

// JSON Schema primitive type tags used in generated tool input schemas.
const (
	SchemaTypeInteger = "integer"
	SchemaTypeBoolean = "boolean"
	SchemaTypeNumber  = "number"
	SchemaTypeObject  = "object"
	SchemaTypeString  = "string"
	SchemaTypeArray   = "array"
)

// ServerStatus represents the lifecycle status of a persisted server record.
type ServerStatus string

const (
	ServerStatusActive   ServerStatus = "active"
	ServerStatusInactive ServerStatus = "inactive"
)

// ToolProperty describes a single field in a tool's input schema.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// ToolInputSchema defines the schema for the input parameters of a tool.
// Type must always be "object" for a valid descriptor.
type ToolInputSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

// ToolDescriptor is a named, schema-described unit of invocable functionality
// consumed by an external tool-invocation runtime.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"inputSchema"`

	// Metadata is an opaque mapping. Route-derived tools record
	// uri/method/controller/action here.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Source tags the origin of an injected tool (e.g. "laravel-boost").
	// It is used to detect prior injection before re-merging.
	Source string `json:"source,omitempty"`
}

// Integration records metadata about a third-party tool-provider integration
// merged into a server config.
type Integration struct {
	Enabled    bool `json:"enabled"`
	ToolsCount int  `json:"tools_count"`
	Installed  bool `json:"installed"`
}

// ServerConfig is the top-level named document aggregating a set of tool
// descriptors plus metadata. It is the primary artifact of the generation
// pipeline, persisted as one JSON file per server.
type ServerConfig struct {
	Name         string                 `json:"name"`
	Version      string                 `json:"version"`
	Description  string                 `json:"description"`
	Tools        []ToolDescriptor       `json:"tools"`
	Resources    []any                  `json:"resources"`
	Prompts      []any                  `json:"prompts"`
	Integrations map[string]Integration `json:"integrations,omitempty"`
	CreatedAt    string                 `json:"created_at,omitempty"`
}

// ConfigFileInfo describes one config file found in the storage directory.
type ConfigFileInfo struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Modified int64  `json:"modified"`
}

// ValidateServerStatus validates the input string and returns the
// corresponding ServerStatus. If the input is empty, it returns the default
// ServerStatusInactive.
func ValidateServerStatus(input string) (ServerStatus, error) {
	switch input {
	case string(ServerStatusActive):
		return ServerStatusActive, nil
	case string(ServerStatusInactive), "":
		return ServerStatusInactive, nil
	default:
		return "", fmt.Errorf(
			"unsupported server status: %s (acceptable values: '%s', '%s')",
			input, ServerStatusActive, ServerStatusInactive,
		)
	}
}
