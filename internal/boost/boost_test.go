package boost

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/mcpforge/mcpforge/pkg/types"
)

func installedFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("app/vendor/laravel/boost", 0o755); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestIsInstalled(t *testing.T) {
	t.Run("vendor directory present", func(t *testing.T) {
		a := NewAdapter(&AdapterConfig{Fs: installedFs(t), BaseDir: "app"})
		if !a.IsInstalled() {
			t.Error("expected installed")
		}
	})

	t.Run("lock file lists the package", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		lock := `{"packages":[],"packages-dev":[{"name":"laravel/boost"}]}`
		if err := afero.WriteFile(fs, "app/composer.lock", []byte(lock), 0o644); err != nil {
			t.Fatal(err)
		}
		a := NewAdapter(&AdapterConfig{Fs: fs, BaseDir: "app"})
		if !a.IsInstalled() {
			t.Error("expected installed via lock file")
		}
	})

	t.Run("not installed", func(t *testing.T) {
		a := NewAdapter(&AdapterConfig{Fs: afero.NewMemMapFs(), BaseDir: "app"})
		if a.IsInstalled() {
			t.Error("expected not installed")
		}
	})

	t.Run("lock file without the package", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		lock := `{"packages":[{"name":"laravel/framework"}]}`
		if err := afero.WriteFile(fs, "app/composer.lock", []byte(lock), 0o644); err != nil {
			t.Fatal(err)
		}
		a := NewAdapter(&AdapterConfig{Fs: fs, BaseDir: "app"})
		if a.IsInstalled() {
			t.Error("expected not installed")
		}
	})
}

func TestInstallBoost(t *testing.T) {
	t.Run("no-op when already installed", func(t *testing.T) {
		ran := false
		a := NewAdapter(&AdapterConfig{
			Fs:      installedFs(t),
			BaseDir: "app",
			Runner: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
				ran = true
				return nil, nil
			},
		})
		if !a.InstallBoost(nil) {
			t.Error("expected success")
		}
		if ran {
			t.Error("runner must not be invoked when already installed")
		}
	})

	t.Run("successful install", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		a := NewAdapter(&AdapterConfig{
			Fs:      fs,
			BaseDir: "app",
			Runner: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
				// simulate the package manager creating the vendor dir
				return []byte("ok"), fs.MkdirAll("app/vendor/laravel/boost", 0o755)
			},
		})

		var messages []string
		if !a.InstallBoost(func(msg string) { messages = append(messages, msg) }) {
			t.Fatal("expected install to succeed")
		}
		if len(messages) == 0 {
			t.Error("expected progress messages")
		}
	})

	t.Run("failed install reports through progress, not error", func(t *testing.T) {
		a := NewAdapter(&AdapterConfig{
			Fs:      afero.NewMemMapFs(),
			BaseDir: "app",
			Runner: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
				return []byte("composer blew up"), errors.New("exit status 1")
			},
		})

		var messages []string
		if a.InstallBoost(func(msg string) { messages = append(messages, msg) }) {
			t.Fatal("expected install to fail")
		}
		if len(messages) < 2 {
			t.Errorf("expected failure guidance in progress messages, got: %v", messages)
		}
	})
}

func TestBoostTools(t *testing.T) {
	t.Run("not installed yields no tools", func(t *testing.T) {
		a := NewAdapter(&AdapterConfig{Fs: afero.NewMemMapFs(), BaseDir: "app"})
		if tools := a.BoostTools(); tools != nil {
			t.Errorf("expected nil, got %d tools", len(tools))
		}
	})

	t.Run("installed yields the tagged catalog", func(t *testing.T) {
		a := NewAdapter(&AdapterConfig{Fs: installedFs(t), BaseDir: "app"})
		tools := a.BoostTools()
		if len(tools) != 4 {
			t.Fatalf("expected 4 tools, got %d", len(tools))
		}
		wantNames := []string{"boost_query_database", "boost_tinker", "boost_search_docs", "boost_inspect_schema"}
		for i, want := range wantNames {
			if tools[i].Name != want {
				t.Errorf("tool %d: name = %q, want %q", i, tools[i].Name, want)
			}
			if tools[i].Source != SourceTag {
				t.Errorf("tool %q is not tagged with the boost source", tools[i].Name)
			}
		}
	})
}

// Merging is deliberately not idempotent: a second merge duplicates the
// catalog. Callers guard with HasBoostTools.
func TestMergeBoostToolsIsNotIdempotent(t *testing.T) {
	a := NewAdapter(&AdapterConfig{Fs: installedFs(t), BaseDir: "app"})

	cfg := &types.ServerConfig{Name: "srv", Version: "1.0.0", Tools: []types.ToolDescriptor{}}

	cfg = a.MergeBoostTools(cfg, false, nil)
	if !a.HasBoostTools(cfg.Tools) {
		t.Fatal("expected boost tools after first merge")
	}
	cfg = a.MergeBoostTools(cfg, false, nil)

	tagged := 0
	for _, tool := range cfg.Tools {
		if tool.Source == SourceTag {
			tagged++
		}
	}
	if tagged != 8 {
		t.Fatalf("expected 8 boost-tagged tools after a double merge, got %d", tagged)
	}

	integration, ok := cfg.Integrations[IntegrationKey]
	if !ok {
		t.Fatal("expected the integration entry to be recorded")
	}
	if !integration.Enabled || integration.ToolsCount != 4 || !integration.Installed {
		t.Errorf("integration = %+v", integration)
	}
}

func TestMergeBoostToolsWhenNotInstalled(t *testing.T) {
	a := NewAdapter(&AdapterConfig{Fs: afero.NewMemMapFs(), BaseDir: "app"})

	cfg := &types.ServerConfig{Name: "srv", Version: "1.0.0"}
	cfg = a.MergeBoostTools(cfg, false, nil)

	if len(cfg.Tools) != 0 {
		t.Errorf("expected no tools merged, got %d", len(cfg.Tools))
	}
	if cfg.Integrations != nil {
		t.Error("expected no integration entry when nothing was merged")
	}
}
