// Package boost integrates the Laravel Boost sibling package: it detects the
// package, optionally installs it through the host package manager, and
// supplies its fixed catalog of tool descriptors for merging into server
// configs.
package boost

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mcpforge/mcpforge/pkg/types"
)

const (
	// PackageName is the canonical package name checked for in the
	// dependency lock file.
	PackageName = "laravel/boost"

	// SourceTag marks tools injected by this integration, so callers can
	// detect a prior merge.
	SourceTag = "laravel-boost"

	// IntegrationKey is the key recorded under a config's integrations map.
	IntegrationKey = "laravel-boost"

	installTimeout = 5 * time.Minute
)

// CommandRunner executes the package-manager subprocess. It exists so tests
// can stub out the shell-out.
type CommandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// AdapterConfig holds the configuration parameters for initializing the Adapter.
type AdapterConfig struct {
	Fs      afero.Fs
	Logger  *zap.Logger
	BaseDir string

	// InstallCommand overrides the default package-manager invocation.
	InstallCommand []string

	// Runner overrides subprocess execution, for tests.
	Runner CommandRunner
}

// Adapter detects, installs and merges the Boost tool catalog.
type Adapter struct {
	fs             afero.Fs
	logger         *zap.Logger
	baseDir        string
	installCommand []string
	run            CommandRunner
}

// NewAdapter creates a Boost adapter. Unset config fields get defaults.
func NewAdapter(c *AdapterConfig) *Adapter {
	a := &Adapter{
		fs:             c.Fs,
		logger:         c.Logger,
		baseDir:        c.BaseDir,
		installCommand: c.InstallCommand,
		run:            c.Runner,
	}
	if a.fs == nil {
		a.fs = afero.NewOsFs()
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if len(a.installCommand) == 0 {
		a.installCommand = []string{"composer", "require", PackageName, "--dev"}
	}
	if a.run == nil {
		a.run = execRunner
	}
	return a
}

// lockFile is the subset of the dependency lock file the adapter inspects.
type lockFile struct {
	Packages    []lockPackage `json:"packages"`
	PackagesDev []lockPackage `json:"packages-dev"`
}

type lockPackage struct {
	Name string `json:"name"`
}

// IsInstalled reports whether Boost is present: either its install directory
// exists or the lock file lists the package.
func (a *Adapter) IsInstalled() bool {
	installDir := filepath.Join(a.baseDir, "vendor", filepath.FromSlash(PackageName))
	if ok, _ := afero.DirExists(a.fs, installDir); ok {
		return true
	}
	return a.lockFileListsPackage(PackageName)
}

func (a *Adapter) lockFileListsPackage(name string) bool {
	content, err := afero.ReadFile(a.fs, filepath.Join(a.baseDir, "composer.lock"))
	if err != nil {
		return false
	}

	var lock lockFile
	if err := json.Unmarshal(content, &lock); err != nil {
		return false
	}

	for _, pkg := range append(lock.Packages, lock.PackagesDev...) {
		if pkg.Name == name {
			return true
		}
	}
	return false
}

// InstallBoost installs Boost through the host package manager as a dev
// dependency, bounded by a hard timeout. It is a no-op success when Boost is
// already installed. It never returns an error: failures are reported through
// the progress callback and a false return.
func (a *Adapter) InstallBoost(progress func(string)) bool {
	if progress == nil {
		progress = func(string) {}
	}

	if a.IsInstalled() {
		return true
	}

	progress("Laravel Boost is not installed. Attempting to install...")

	ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
	defer cancel()

	output, err := a.run(ctx, a.baseDir, a.installCommand[0], a.installCommand[1:]...)
	if err == nil && a.IsInstalled() {
		progress("Laravel Boost installed successfully")
		return true
	}

	a.logger.Error("boost install failed",
		zap.Error(err),
		zap.ByteString("output", output),
	)
	progress("Failed to install Laravel Boost automatically.")
	progress("Please install manually: composer require laravel/boost --dev")
	if err != nil {
		progress("Error: " + err.Error())
	}
	return false
}

// BoostTools returns the fixed Boost tool catalog, each entry tagged with
// SourceTag. It returns no tools when Boost is not installed.
func (a *Adapter) BoostTools() []types.ToolDescriptor {
	if !a.IsInstalled() {
		return nil
	}
	return boostCatalog()
}

func boostCatalog() []types.ToolDescriptor {
	return []types.ToolDescriptor{
		{
			Name:        "boost_query_database",
			Description: "Query the application database using Boost",
			InputSchema: types.ToolInputSchema{
				Type: types.SchemaTypeObject,
				Properties: map[string]types.ToolProperty{
					"query": {Type: types.SchemaTypeString, Description: "The database query to execute"},
				},
				Required: []string{"query"},
			},
			Source: SourceTag,
		},
		{
			Name:        "boost_tinker",
			Description: "Execute code in the application runtime via Boost",
			InputSchema: types.ToolInputSchema{
				Type: types.SchemaTypeObject,
				Properties: map[string]types.ToolProperty{
					"code": {Type: types.SchemaTypeString, Description: "The code to execute"},
				},
				Required: []string{"code"},
			},
			Source: SourceTag,
		},
		{
			Name:        "boost_search_docs",
			Description: "Search framework documentation",
			InputSchema: types.ToolInputSchema{
				Type: types.SchemaTypeObject,
				Properties: map[string]types.ToolProperty{
					"query": {Type: types.SchemaTypeString, Description: "Search query"},
				},
				Required: []string{"query"},
			},
			Source: SourceTag,
		},
		{
			Name:        "boost_inspect_schema",
			Description: "Inspect database schema",
			InputSchema: types.ToolInputSchema{
				Type: types.SchemaTypeObject,
				Properties: map[string]types.ToolProperty{
					"table": {Type: types.SchemaTypeString, Description: "Table name to inspect"},
				},
			},
			Source: SourceTag,
		},
	}
}

// HasBoostTools reports whether any tool carries the Boost source tag.
func (a *Adapter) HasBoostTools(tools []types.ToolDescriptor) bool {
	for _, tool := range tools {
		if tool.Source == SourceTag {
			return true
		}
	}
	return false
}

// MergeBoostTools appends the Boost catalog to the config's tools and records
// the integration metadata. When Boost is absent and autoInstall is set, an
// install is attempted first on a best-effort basis: an install failure does
// not abort the merge.
//
// The merge does not de-duplicate against tools already carrying the Boost
// source tag; calling it twice duplicates the catalog. Callers that care use
// HasBoostTools to detect a prior merge.
func (a *Adapter) MergeBoostTools(cfg *types.ServerConfig, autoInstall bool, progress func(string)) *types.ServerConfig {
	if !a.IsInstalled() && autoInstall {
		a.InstallBoost(progress)
	}

	boostTools := a.BoostTools()
	if len(boostTools) == 0 {
		return cfg
	}

	cfg.Tools = append(cfg.Tools, boostTools...)

	if cfg.Integrations == nil {
		cfg.Integrations = make(map[string]types.Integration)
	}
	cfg.Integrations[IntegrationKey] = types.Integration{
		Enabled:    true,
		ToolsCount: len(boostTools),
		Installed:  a.IsInstalled(),
	}
	return cfg
}
