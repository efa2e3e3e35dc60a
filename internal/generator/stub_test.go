package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/mcpforge/mcpforge/internal/errs"
)

func TestRenderToolStub(t *testing.T) {
	t.Run("valid name", func(t *testing.T) {
		code, err := RenderToolStub("send_email", StubOptions{Description: "Sends an email"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		for _, want := range []string{
			"package tools",
			"type SendEmailTool struct{}",
			`return "send_email"`,
			`return "Sends an email"`,
		} {
			if !strings.Contains(code, want) {
				t.Errorf("stub is missing %q", want)
			}
		}
	})

	t.Run("default description", func(t *testing.T) {
		code, err := RenderToolStub("ping", StubOptions{})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !strings.Contains(code, "MCP tool for ping") {
			t.Error("expected the default description")
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := RenderToolStub("123-bad", StubOptions{})
		var invalid *errs.ToolNameInvalidError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected ToolNameInvalidError, got: %v", err)
		}
	})
}

func TestWriteToolStub(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := WriteToolStub(fs, "send_email", StubOptions{Namespace: "app/tools"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if path != "app/tools/send_email.go" {
		t.Errorf("path = %q", path)
	}
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Fatal("stub file was not written")
	}
}

func TestSanitizeNamespacePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"app/tools", "app/tools"},
		{"../../etc/passwd", "etc/passwd"},
		{"./tools", "tools"},
		{"app\\tools", "app/tools"},
		{"/app/tools/", "app/tools"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeNamespacePath(tt.in); got != tt.want {
				t.Errorf("SanitizeNamespacePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
