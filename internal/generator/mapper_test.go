package generator

import (
	"testing"

	"github.com/mcpforge/mcpforge/pkg/types"
)

func TestMapColumnType(t *testing.T) {
	tests := []struct {
		name   string
		dbType string
		cast   string
		want   string
	}{
		{"cast integer wins over db type", "varchar(255)", "integer", types.SchemaTypeInteger},
		{"cast int", "bigint", "int", types.SchemaTypeInteger},
		{"cast boolean", "tinyint(1)", "boolean", types.SchemaTypeBoolean},
		{"cast bool", "tinyint(1)", "bool", types.SchemaTypeBoolean},
		{"cast float", "decimal(8,2)", "float", types.SchemaTypeNumber},
		{"cast double", "decimal(8,2)", "double", types.SchemaTypeNumber},
		{"cast array", "text", "array", types.SchemaTypeObject},
		{"cast json", "text", "json", types.SchemaTypeObject},
		{"cast datetime", "timestamp", "datetime", types.SchemaTypeString},
		{"cast date", "date", "date", types.SchemaTypeString},
		{"unknown cast falls back to string", "bigint", "custom_cast", types.SchemaTypeString},
		{"no cast, int db type", "bigint unsigned", "", types.SchemaTypeInteger},
		{"no cast, bool db type", "boolean", "", types.SchemaTypeBoolean},
		{"no cast, float db type", "float8", "", types.SchemaTypeNumber},
		{"no cast, double db type", "double precision", "", types.SchemaTypeNumber},
		{"no cast, decimal db type", "decimal(10,2)", "", types.SchemaTypeNumber},
		{"no cast, json db type", "jsonb", "", types.SchemaTypeObject},
		{"no cast, varchar db type", "varchar(255)", "", types.SchemaTypeString},
		{"no cast, unknown db type", "geometry", "", types.SchemaTypeString},
		{"empty everything", "", "", types.SchemaTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapColumnType(tt.dbType, tt.cast); got != tt.want {
				t.Errorf("MapColumnType(%q, %q) = %q, want %q", tt.dbType, tt.cast, got, tt.want)
			}
		})
	}
}

func TestMapRuntimeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", types.SchemaTypeInteger},
		{"bool", types.SchemaTypeBoolean},
		{"float", types.SchemaTypeNumber},
		{"double", types.SchemaTypeNumber},
		{"array", types.SchemaTypeArray},
		{"object", types.SchemaTypeObject},
		{"string", types.SchemaTypeString},
		{"SomeCustomType", types.SchemaTypeString},
		{"", types.SchemaTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MapRuntimeType(tt.in); got != tt.want {
				t.Errorf("MapRuntimeType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
