package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/pkg/types"
)

// createdAtLayout is the timestamp format stamped into generated configs.
const createdAtLayout = "2006-01-02 15:04:05"

// ConfigFileParser parses user-supplied YAML or JSON config files into raw
// documents and normalizes them into server config documents.
type ConfigFileParser struct {
	fs  afero.Fs
	now func() time.Time
}

// NewConfigFileParser creates a parser reading through the given filesystem.
func NewConfigFileParser(fs afero.Fs) *ConfigFileParser {
	return &ConfigFileParser{fs: fs, now: time.Now}
}

// ParseFile reads and parses a config file, choosing the format by file
// extension. It fails with FileNotFoundError, UnsupportedFormatError or
// ParseError.
func (p *ConfigFileParser) ParseFile(path string) (map[string]any, error) {
	exists, err := afero.Exists(p.fs, path)
	if err != nil || !exists {
		return nil, &errs.FileNotFoundError{Path: path}
	}

	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errs.FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yaml", "yml":
		return parseYAML(content)
	case "json":
		return parseJSON(content)
	default:
		return nil, &errs.UnsupportedFormatError{Extension: ext}
	}
}

func parseYAML(content []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &errs.ParseError{Format: "YAML", Err: err}
	}
	return doc, nil
}

func parseJSON(content []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &errs.ParseError{Format: "JSON", Err: err}
	}
	return doc, nil
}

// ValidateStructure checks that a raw document carries the required top-level
// fields. It fails with MissingFieldError naming the first missing field, and
// with a plain error when tools is present but not a sequence.
func ValidateStructure(doc map[string]any) error {
	for _, field := range []string{"name", "version", "tools"} {
		if _, ok := doc[field]; !ok {
			return &errs.MissingFieldError{Field: field}
		}
	}
	if _, ok := doc["tools"].([]any); !ok {
		return fmt.Errorf("tools must be an array")
	}
	return nil
}

// ToServerConfig validates a raw document's structure and normalizes it into
// a server config, stamping created_at with the current time.
func (p *ConfigFileParser) ToServerConfig(doc map[string]any) (*types.ServerConfig, error) {
	if err := ValidateStructure(doc); err != nil {
		return nil, err
	}

	tools, err := toolsFromRaw(doc["tools"])
	if err != nil {
		return nil, err
	}

	cfg := &types.ServerConfig{
		Name:        stringField(doc, "name"),
		Version:     stringField(doc, "version"),
		Description: stringField(doc, "description"),
		Tools:       tools,
		Resources:   sequenceField(doc, "resources"),
		Prompts:     sequenceField(doc, "prompts"),
		CreatedAt:   p.now().Format(createdAtLayout),
	}
	return cfg, nil
}

// toolsFromRaw converts a raw tools sequence into typed descriptors via a
// JSON round-trip.
func toolsFromRaw(raw any) ([]types.ToolDescriptor, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize tools: %w", err)
	}
	var tools []types.ToolDescriptor
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("failed to normalize tools: %w", err)
	}
	if tools == nil {
		tools = []types.ToolDescriptor{}
	}
	return tools, nil
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func sequenceField(doc map[string]any, key string) []any {
	if seq, ok := doc[key].([]any); ok {
		return seq
	}
	return []any{}
}
