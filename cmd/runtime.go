package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mcpforge/mcpforge/internal/boost"
	"github.com/mcpforge/mcpforge/internal/cache"
	"github.com/mcpforge/mcpforge/internal/generator"
	"github.com/mcpforge/mcpforge/internal/introspect"
	"github.com/mcpforge/mcpforge/internal/service/builder"
	"github.com/mcpforge/mcpforge/internal/service/configstore"
	"github.com/mcpforge/mcpforge/internal/telemetry"
)

const (
	StoragePathEnvVar  = "MCPFORGE_STORAGE_PATH"
	StoragePathDefault = "mcp-servers"

	ExportPathEnvVar  = "MCPFORGE_EXPORT_PATH"
	ExportPathDefault = "exports"

	SchemaFileEnvVar  = "MCPFORGE_SCHEMA_FILE"
	SchemaFileDefault = "mcpforge.yaml"
)

// runtime bundles the services the generation commands share. It is built
// fresh per command invocation.
type runtime struct {
	fs      afero.Fs
	logger  *zap.Logger
	cache   *cache.Cache
	store   *configstore.Store
	parser  *generator.ConfigFileParser
	boost   *boost.Adapter
	builder *builder.Builder

	// models and routes are nil when no schema file is present.
	models *introspect.SchemaRegistry
	routes *introspect.RouteRegistry
}

func storagePath() string {
	if p := os.Getenv(StoragePathEnvVar); p != "" {
		return p
	}
	return StoragePathDefault
}

func exportPath() string {
	if p := os.Getenv(ExportPathEnvVar); p != "" {
		return p
	}
	return ExportPathDefault
}

func schemaFilePath() string {
	if p := os.Getenv(SchemaFileEnvVar); p != "" {
		return p
	}
	return SchemaFileDefault
}

// newRuntime wires the generation pipeline against the OS filesystem. The
// schema file is optional: commands that need model or route introspection
// fail later with a clear error when it is absent.
func newRuntime() (*runtime, error) {
	fs := afero.NewOsFs()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{
		fs:     fs,
		logger: logger,
		cache:  cache.New(),
		parser: generator.NewConfigFileParser(fs),
	}
	rt.store = configstore.New(fs, rt.cache, logger, storagePath())
	rt.boost = boost.NewAdapter(&boost.AdapterConfig{Fs: fs, Logger: logger, BaseDir: "."})

	if exists, _ := afero.Exists(fs, schemaFilePath()); exists {
		models, routes, err := introspect.LoadSchemaFile(fs, schemaFilePath())
		if err != nil {
			return nil, err
		}
		rt.models = models
		rt.routes = routes
	}

	cfg := &builder.ServiceConfig{
		ConfigParser: rt.parser,
		Store:        rt.store,
		Boost:        rt.boost,
		Metrics:      telemetry.NewNoopCustomMetrics(),
		Logger:       logger,
	}
	if rt.models != nil {
		cfg.ModelGenerator = generator.NewModelToolGenerator(rt.models)
	}
	if rt.routes != nil {
		cfg.RouteGenerator = generator.NewRouteToolGenerator(rt.routes)
	}
	rt.builder, err = builder.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return rt, nil
}
