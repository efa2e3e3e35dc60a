package validation

import (
	"strings"
	"testing"

	"github.com/mcpforge/mcpforge/pkg/types"
)

func TestValidateTool(t *testing.T) {
	tests := []struct {
		name       string
		tool       map[string]any
		wantErrors int
		wantSubstr string
	}{
		{
			name: "valid tool",
			tool: map[string]any{
				"name":        "user_list",
				"description": "List users",
				"inputSchema": map[string]any{"type": "object"},
			},
			wantErrors: 0,
		},
		{
			name:       "missing name and description",
			tool:       map[string]any{},
			wantErrors: 2,
		},
		{
			name: "bad name charset",
			tool: map[string]any{
				"name":        "User-List",
				"description": "x",
			},
			wantErrors: 1,
			wantSubstr: "lowercase",
		},
		{
			name: "schema type must be object",
			tool: map[string]any{
				"name":        "user_list",
				"description": "x",
				"inputSchema": map[string]any{"type": "array"},
			},
			wantErrors: 1,
			wantSubstr: `must be "object"`,
		},
		{
			name: "schema without type",
			tool: map[string]any{
				"name":        "user_list",
				"description": "x",
				"inputSchema": map[string]any{},
			},
			wantErrors: 1,
			wantSubstr: "must have a type",
		},
		{
			name: "schema not an object",
			tool: map[string]any{
				"name":        "user_list",
				"description": "x",
				"inputSchema": "not-a-map",
			},
			wantErrors: 1,
			wantSubstr: "must be an object",
		},
		{
			name: "properties not a map",
			tool: map[string]any{
				"name":        "user_list",
				"description": "x",
				"inputSchema": map[string]any{"type": "object", "properties": []any{}},
			},
			wantErrors: 1,
			wantSubstr: "properties must be a map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateTool(tt.tool)
			if len(errors) != tt.wantErrors {
				t.Fatalf("got %d errors %v, want %d", len(errors), errors, tt.wantErrors)
			}
			if tt.wantSubstr != "" && !strings.Contains(strings.Join(errors, "\n"), tt.wantSubstr) {
				t.Errorf("errors %v missing substring %q", errors, tt.wantSubstr)
			}
		})
	}
}

// The validator accumulates problems across the whole document; a config with
// an empty name, a non-semver version and a non-array tools field must report
// all three at once.
func TestValidateServerConfigAccumulates(t *testing.T) {
	errors := ValidateServerConfig(map[string]any{
		"name":    "",
		"version": "1.0",
		"tools":   "not-an-array",
	})
	if len(errors) < 3 {
		t.Fatalf("got %d errors %v, want at least 3", len(errors), errors)
	}

	joined := strings.Join(errors, "\n")
	for _, want := range []string{
		"Server name is required",
		"semver",
		"Tools must be an array",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q: %v", want, errors)
		}
	}
}

func TestValidateServerConfigToolErrorsArePrefixed(t *testing.T) {
	errors := ValidateServerConfig(map[string]any{
		"name":    "srv",
		"version": "1.0.0",
		"tools": []any{
			map[string]any{"name": "ok_tool", "description": "fine"},
			map[string]any{"name": "", "description": ""},
		},
	})
	if len(errors) != 2 {
		t.Fatalf("got %d errors %v, want 2", len(errors), errors)
	}
	for _, e := range errors {
		if !strings.HasPrefix(e, "Tool at index 1: ") {
			t.Errorf("error %q not prefixed with the tool index", e)
		}
	}
}

func TestValidateConfigTyped(t *testing.T) {
	cfg := &types.ServerConfig{
		Name:    "srv",
		Version: "1.0.0",
		Tools: []types.ToolDescriptor{
			{
				Name:        "user_list",
				Description: "List users",
				InputSchema: types.ToolInputSchema{Type: types.SchemaTypeObject},
			},
		},
	}
	if errors := ValidateConfig(cfg); !IsValid(errors) {
		t.Errorf("expected valid config, got: %v", errors)
	}

	cfg.Version = "not-semver"
	if errors := ValidateConfig(cfg); IsValid(errors) {
		t.Error("expected version error")
	}
}
