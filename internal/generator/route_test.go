package generator

import (
	"testing"

	"github.com/mcpforge/mcpforge/internal/introspect"
	"github.com/mcpforge/mcpforge/pkg/types"
)

func TestGenerateFromRoutes(t *testing.T) {
	routes := []introspect.RouteAnalysis{
		{
			URI:        "/users/{id}",
			Methods:    []string{"GET"},
			Controller: "UserController",
			Action:     "show",
		},
		{
			URI:        "/posts",
			Methods:    []string{"POST"},
			Name:       "posts.store",
			Controller: "PostController",
			Action:     "store",
			Params: []introspect.RouteParam{
				{Name: "title", Type: "string"},
				{Name: "draft", Type: "bool", Default: true},
				{Name: "excerpt", Type: "string", Nullable: true},
			},
		},
		{
			// no controller, must be skipped
			URI:     "/closure-route",
			Methods: []string{"GET"},
		},
	}

	g := NewRouteToolGenerator(nil)
	tools, err := g.GenerateFromRoutes(routes)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools (closure route skipped), got %d", len(tools))
	}

	t.Run("uri param route", func(t *testing.T) {
		tool := tools[0]
		if tool.Name != "get_users_id" {
			t.Errorf("name = %q, want get_users_id", tool.Name)
		}
		if tool.Description != "GET request to /users/{id}" {
			t.Errorf("description = %q", tool.Description)
		}

		id, ok := tool.InputSchema.Properties["id"]
		if !ok {
			t.Fatal("missing id property")
		}
		if id.Type != types.SchemaTypeString {
			t.Errorf("id type = %q, want string (uri params are always strings)", id.Type)
		}
		if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "id" {
			t.Errorf("required = %v, want [id]", tool.InputSchema.Required)
		}

		if tool.Metadata["uri"] != "/users/{id}" || tool.Metadata["method"] != "get" {
			t.Errorf("metadata = %v", tool.Metadata)
		}
	})

	t.Run("named route with handler params", func(t *testing.T) {
		tool := tools[1]
		if tool.Name != "posts_store" {
			t.Errorf("name = %q, want posts_store", tool.Name)
		}
		if tool.Description != "Posts Store" {
			t.Errorf("description = %q, want Posts Store", tool.Description)
		}

		if len(tool.InputSchema.Properties) != 3 {
			t.Errorf("got %d properties, want 3", len(tool.InputSchema.Properties))
		}
		draft := tool.InputSchema.Properties["draft"]
		if draft.Type != types.SchemaTypeBoolean || draft.Default != true {
			t.Errorf("draft property = %+v", draft)
		}

		// only title is required: draft has a default, excerpt is nullable
		if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "title" {
			t.Errorf("required = %v, want [title]", tool.InputSchema.Required)
		}
	})
}

func TestGenerateFromRoutesUsesIntrospector(t *testing.T) {
	registry := introspect.NewRouteRegistry()
	registry.Register(introspect.RouteAnalysis{
		URI:        "/ping",
		Methods:    []string{"GET", "HEAD"},
		Controller: "PingController",
		Action:     "ping",
	})

	g := NewRouteToolGenerator(registry)
	tools, err := g.GenerateFromRoutes(nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}
	if tools[0].Name != "get_ping" {
		t.Errorf("name = %q, want get_ping", tools[0].Name)
	}
	// HEAD is filtered at registration, so GET is the first verb
	if tools[0].Metadata["method"] != "get" {
		t.Errorf("method = %v, want get", tools[0].Metadata["method"])
	}
}

func TestUriParamCollisionWins(t *testing.T) {
	route := introspect.RouteAnalysis{
		URI:        "/items/{id}",
		Methods:    []string{"GET"},
		Controller: "ItemController",
		Action:     "show",
		Params: []introspect.RouteParam{
			{Name: "id", Type: "int"},
		},
	}

	g := NewRouteToolGenerator(nil)
	tools, err := g.GenerateFromRoutes([]introspect.RouteAnalysis{route})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	id := tools[0].InputSchema.Properties["id"]
	if id.Type != types.SchemaTypeString {
		t.Errorf("id type = %q, want string: uri param wins the collision", id.Type)
	}
}
