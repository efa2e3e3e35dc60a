// Package generator produces MCP tool descriptors from entity schemas,
// registered routes and user-supplied config files.
package generator

import (
	"strings"

	"github.com/mcpforge/mcpforge/pkg/types"
)

// castTypeMap maps a declared runtime cast to a JSON Schema type tag.
// Cast rules take precedence over raw column-type rules.
var castTypeMap = map[string]string{
	"int":      types.SchemaTypeInteger,
	"integer":  types.SchemaTypeInteger,
	"bool":     types.SchemaTypeBoolean,
	"boolean":  types.SchemaTypeBoolean,
	"float":    types.SchemaTypeNumber,
	"double":   types.SchemaTypeNumber,
	"array":    types.SchemaTypeObject,
	"json":     types.SchemaTypeObject,
	"datetime": types.SchemaTypeString,
	"date":     types.SchemaTypeString,
}

// MapColumnType maps a database column type, plus an optional cast hint, to a
// JSON Schema type tag. It is total: unrecognized inputs map to "string".
func MapColumnType(dbType, cast string) string {
	if cast != "" {
		if t, ok := castTypeMap[cast]; ok {
			return t
		}
		return types.SchemaTypeString
	}

	switch {
	case strings.Contains(dbType, "int"):
		return types.SchemaTypeInteger
	case strings.Contains(dbType, "bool"):
		return types.SchemaTypeBoolean
	case strings.Contains(dbType, "float"),
		strings.Contains(dbType, "double"),
		strings.Contains(dbType, "decimal"):
		return types.SchemaTypeNumber
	case strings.Contains(dbType, "json"):
		return types.SchemaTypeObject
	default:
		return types.SchemaTypeString
	}
}

// MapRuntimeType maps a handler parameter's declared runtime type to a JSON
// Schema type tag. Unrecognized or empty types map to "string".
func MapRuntimeType(runtimeType string) string {
	switch strings.ToLower(runtimeType) {
	case "int", "integer":
		return types.SchemaTypeInteger
	case "bool", "boolean":
		return types.SchemaTypeBoolean
	case "float", "double":
		return types.SchemaTypeNumber
	case "array":
		return types.SchemaTypeArray
	case "object":
		return types.SchemaTypeObject
	default:
		return types.SchemaTypeString
	}
}
