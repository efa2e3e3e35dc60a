// Package validation implements the structural validator for server config
// documents and tool descriptors. Validators accumulate every problem found
// and never short-circuit on the first failure.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mcpforge/mcpforge/pkg/types"
)

var (
	validToolName = regexp.MustCompile(`^[a-z0-9_]+$`)
	validVersion  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// ValidateTool validates one raw tool descriptor and returns the accumulated
// problems. An empty result means the tool is valid.
func ValidateTool(tool map[string]any) []string {
	var errors []string

	name, _ := tool["name"].(string)
	if name == "" {
		errors = append(errors, "Tool name is required")
	} else if !validToolName.MatchString(name) {
		errors = append(errors, "Tool name must contain only lowercase letters, numbers, and underscores")
	}

	if description, _ := tool["description"].(string); description == "" {
		errors = append(errors, "Tool description is required")
	}

	if raw, ok := tool["inputSchema"]; ok {
		errors = append(errors, validateInputSchema(raw)...)
	}

	return errors
}

func validateInputSchema(raw any) []string {
	schema, ok := raw.(map[string]any)
	if !ok {
		return []string{"Input schema must be an object"}
	}

	var errors []string

	schemaType, ok := schema["type"]
	if !ok {
		errors = append(errors, "Input schema must have a type")
	} else if schemaType != "object" {
		errors = append(errors, `Input schema type must be "object"`)
	}

	if properties, ok := schema["properties"]; ok {
		if _, isMap := properties.(map[string]any); !isMap {
			errors = append(errors, "Input schema properties must be a map")
		}
	}

	return errors
}

// ValidateServerConfig validates a raw server config document. All errors are
// collected; tool errors are prefixed with the tool's index.
func ValidateServerConfig(config map[string]any) []string {
	var errors []string

	if name, _ := config["name"].(string); name == "" {
		errors = append(errors, "Server name is required")
	}

	version, _ := config["version"].(string)
	if version == "" {
		errors = append(errors, "Server version is required")
	} else if !validVersion.MatchString(version) {
		errors = append(errors, "Server version must be in semver format (e.g., 1.0.0)")
	}

	rawTools, hasTools := config["tools"]
	if !hasTools {
		return errors
	}

	tools, ok := rawTools.([]any)
	if !ok {
		errors = append(errors, "Tools must be an array")
		return errors
	}

	for i, rawTool := range tools {
		tool, ok := rawTool.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("Tool at index %d: tool must be an object", i))
			continue
		}
		for _, toolErr := range ValidateTool(tool) {
			errors = append(errors, fmt.Sprintf("Tool at index %d: %s", i, toolErr))
		}
	}

	return errors
}

// ValidateConfig validates a typed server config by round-tripping it through
// its JSON document form.
func ValidateConfig(cfg *types.ServerConfig) []string {
	doc, err := toDocument(cfg)
	if err != nil {
		return []string{fmt.Sprintf("failed to normalize config: %v", err)}
	}
	return ValidateServerConfig(doc)
}

// ValidateDescriptor validates a typed tool descriptor.
func ValidateDescriptor(tool *types.ToolDescriptor) []string {
	doc, err := toDocument(tool)
	if err != nil {
		return []string{fmt.Sprintf("failed to normalize tool: %v", err)}
	}
	return ValidateTool(doc)
}

// IsValid reports whether a validation result is empty.
func IsValid(errors []string) bool {
	return len(errors) == 0
}

func toDocument(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
