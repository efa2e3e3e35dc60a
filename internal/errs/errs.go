// Package errs defines the typed errors raised by the mcpforge generation
// pipeline, along with the category / code / suggestions triple that the CLI
// and the dashboard API render to users.
package errs

import (
	"errors"
	"fmt"
)

// Error categories. Each typed error maps to exactly one category.
const (
	CategoryNotFound      = "not_found"
	CategoryValidation    = "validation"
	CategoryConfig        = "config"
	CategoryPermission    = "permission"
	CategoryBusinessLogic = "business_logic"
	CategoryGeneric       = "generic"
)

// Stable short codes per category, used to cross-reference documentation.
const (
	CodeNotFound      = "MCP-001"
	CodeValidation    = "MCP-002"
	CodeConfig        = "MCP-003"
	CodePermission    = "MCP-004"
	CodeBusinessLogic = "MCP-005"
	CodeGeneric       = "MCP-000"
)

// FileNotFoundError indicates that a referenced config or import file is absent.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// UnsupportedFormatError indicates a config file whose extension is not yaml/yml/json.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config file format: %s (supported: yaml, yml, json)", e.Extension)
}

// ParseError indicates a malformed YAML or JSON document body.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError indicates a parsed document that lacks a required top-level field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("config is missing required field: %s", e.Field)
}

// EntityNotFoundError indicates that a model generation target does not resolve
// to any known entity.
type EntityNotFoundError struct {
	Entity string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %s is not registered in the schema registry", e.Entity)
}

// NotAnEntityError indicates an identifier that resolves to a known type which
// is not a data-model entity.
type NotAnEntityError struct {
	Entity string
}

func (e *NotAnEntityError) Error() string {
	return fmt.Sprintf("%s is a known type but not a data-model entity", e.Entity)
}

// ToolNameInvalidError indicates a generated or stub tool name that fails the
// identifier charset.
type ToolNameInvalidError struct {
	Name string
}

func (e *ToolNameInvalidError) Error() string {
	return fmt.Sprintf("invalid tool name %q: must start with a letter or underscore and contain only letters, numbers and underscores", e.Name)
}

// ToolSaveFailedError indicates a stub file write failure.
type ToolSaveFailedError struct {
	Tool string
	Path string
	Err  error
}

func (e *ToolSaveFailedError) Error() string {
	return fmt.Sprintf("failed to save tool %s to %s: %v", e.Tool, e.Path, e.Err)
}

func (e *ToolSaveFailedError) Unwrap() error { return e.Err }

// ServerNotFoundError indicates a server lookup miss by id or name.
type ServerNotFoundError struct {
	ID   uint
	Name string
}

func (e *ServerNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("server %q not found", e.Name)
	}
	return fmt.Sprintf("server with id %d not found", e.ID)
}

// ToolNotFoundError indicates a tool lookup miss within a server's tool rows.
type ToolNotFoundError struct {
	ID       uint
	ServerID uint
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool with id %d not found on server %d", e.ID, e.ServerID)
}

// ValidationError carries field-level input validation failures.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// CategoryOf maps an error to its user-facing category.
func CategoryOf(err error) string {
	var (
		fileNotFound   *FileNotFoundError
		unsupported    *UnsupportedFormatError
		parse          *ParseError
		missingField   *MissingFieldError
		entityNotFound *EntityNotFoundError
		notAnEntity    *NotAnEntityError
		nameInvalid    *ToolNameInvalidError
		saveFailed     *ToolSaveFailedError
		serverNotFound *ServerNotFoundError
		toolNotFound   *ToolNotFoundError
		validation     *ValidationError
	)
	switch {
	case errors.As(err, &fileNotFound), errors.As(err, &entityNotFound),
		errors.As(err, &serverNotFound), errors.As(err, &toolNotFound):
		return CategoryNotFound
	case errors.As(err, &unsupported), errors.As(err, &parse), errors.As(err, &missingField):
		return CategoryConfig
	case errors.As(err, &validation):
		return CategoryValidation
	case errors.As(err, &notAnEntity), errors.As(err, &nameInvalid), errors.As(err, &saveFailed):
		return CategoryBusinessLogic
	default:
		return CategoryGeneric
	}
}

// CodeOf maps an error to the stable short code of its category.
func CodeOf(err error) string {
	switch CategoryOf(err) {
	case CategoryNotFound:
		return CodeNotFound
	case CategoryValidation:
		return CodeValidation
	case CategoryConfig:
		return CodeConfig
	case CategoryPermission:
		return CodePermission
	case CategoryBusinessLogic:
		return CodeBusinessLogic
	default:
		return CodeGeneric
	}
}

// SuggestionsOf returns remediation suggestions keyed by the error's category.
func SuggestionsOf(err error) []string {
	switch CategoryOf(err) {
	case CategoryNotFound:
		return []string{
			"Verify the name or ID is correct",
			"Check if it was recently deleted",
			"List the existing entries to find it",
		}
	case CategoryConfig:
		return []string{
			"Verify the configuration file exists",
			"Check file format (YAML or JSON)",
			"Validate configuration structure",
			"Run: mcpforge validate-config <name>",
		}
	case CategoryValidation:
		return []string{
			"Check all required fields are filled",
			"Verify field formats match requirements",
			"Review field validation rules",
		}
	case CategoryPermission:
		return []string{
			"Check your credentials",
			"Contact an administrator if access is required",
		}
	case CategoryBusinessLogic:
		return []string{
			"Verify tool name is valid (letters, numbers and underscores only)",
			"Check namespace path exists",
			"Ensure file permissions are correct",
		}
	default:
		return []string{
			"Try the operation again",
			"Check the logs for details",
		}
	}
}
