package generator

import (
	"path"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/mcpforge/mcpforge/internal/errs"
)

var validStubToolName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// toolStub is the template for generated tool handler source files. This is
// plain placeholder substitution, not a templating engine.
const toolStub = `// Code generated by mcpforge. Edit as needed.

package {{package}}

import "context"

// {{class}} implements the "{{name}}" tool.
type {{class}} struct{}

// Name returns the tool's unique identifier.
func (t *{{class}}) Name() string { return "{{name}}" }

// Description explains what the tool does.
func (t *{{class}}) Description() string { return "{{description}}" }

// Execute runs the tool with the given arguments.
func (t *{{class}}) Execute(ctx context.Context, args map[string]any) (string, error) {
	// TODO: implement tool logic
	return "Tool executed successfully", nil
}
`

// StubOptions configures tool stub generation.
type StubOptions struct {
	// Namespace is the slash-separated directory path the stub is written
	// under. It is sanitized before filesystem use.
	Namespace string

	Description string
}

// DefaultToolNamespace is the directory generated tool stubs are written to
// when no namespace is supplied.
const DefaultToolNamespace = "internal/tools"

// RenderToolStub renders the tool stub source for a tool name. It fails with
// ToolNameInvalidError when the name is not a valid identifier.
func RenderToolStub(toolName string, opts StubOptions) (string, error) {
	if !validStubToolName.MatchString(toolName) {
		return "", &errs.ToolNameInvalidError{Name: toolName}
	}

	description := opts.Description
	if description == "" {
		description = "MCP tool for " + toolName
	}

	namespace := SanitizeNamespacePath(opts.Namespace)
	if namespace == "" {
		namespace = DefaultToolNamespace
	}

	r := strings.NewReplacer(
		"{{package}}", path.Base(namespace),
		"{{class}}", studly(toolName)+"Tool",
		"{{name}}", ToolNameFromEntity(toolName),
		"{{description}}", description,
	)
	return r.Replace(toolStub), nil
}

// WriteToolStub renders a tool stub and writes it under the sanitized
// namespace path. It returns the written file path and fails with
// ToolSaveFailedError on write failure.
func WriteToolStub(fs afero.Fs, toolName string, opts StubOptions) (string, error) {
	code, err := RenderToolStub(toolName, opts)
	if err != nil {
		return "", err
	}

	dir := SanitizeNamespacePath(opts.Namespace)
	if dir == "" {
		dir = DefaultToolNamespace
	}

	filePath := path.Join(dir, toolName+".go")
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", &errs.ToolSaveFailedError{Tool: toolName, Path: filePath, Err: err}
	}
	if err := afero.WriteFile(fs, filePath, []byte(code), 0o644); err != nil {
		return "", &errs.ToolSaveFailedError{Tool: toolName, Path: filePath, Err: err}
	}
	return filePath, nil
}

// SanitizeNamespacePath normalizes a namespace into a relative filesystem
// path with directory-traversal sequences stripped.
func SanitizeNamespacePath(namespace string) string {
	p := strings.ReplaceAll(namespace, "\\", "/")
	p = strings.ReplaceAll(p, "../", "")
	p = strings.ReplaceAll(p, "./", "")
	return strings.Trim(p, "/")
}

// studly converts a snake_case or camelCase name into PascalCase.
func studly(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
