// Package builder assembles server config documents from their merge sources:
// an optional config file, entity models, registered routes, manually supplied
// tools and the Boost integration, applied in that fixed order.
package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mcpforge/mcpforge/internal/boost"
	"github.com/mcpforge/mcpforge/internal/generator"
	"github.com/mcpforge/mcpforge/internal/introspect"
	"github.com/mcpforge/mcpforge/internal/service/configstore"
	"github.com/mcpforge/mcpforge/internal/telemetry"
	"github.com/mcpforge/mcpforge/pkg/types"
)

const defaultVersion = "1.0.0"

// ServiceConfig holds the configuration for creating the Builder.
type ServiceConfig struct {
	ConfigParser   *generator.ConfigFileParser
	ModelGenerator *generator.ModelToolGenerator
	RouteGenerator *generator.RouteToolGenerator
	Store          *configstore.Store
	Boost          *boost.Adapter
	Metrics        telemetry.CustomMetrics
	Logger         *zap.Logger
}

// Builder builds server config documents.
type Builder struct {
	parser   *generator.ConfigFileParser
	models   *generator.ModelToolGenerator
	routes   *generator.RouteToolGenerator
	store    *configstore.Store
	boost    *boost.Adapter
	metrics  telemetry.CustomMetrics
	logger   *zap.Logger
	progress func(string)
}

// NewBuilder creates a Builder. Metrics and Logger fall back to no-op
// implementations when unset.
func NewBuilder(c *ServiceConfig) (*Builder, error) {
	if c.ConfigParser == nil {
		return nil, fmt.Errorf("config parser is required")
	}
	b := &Builder{
		parser:  c.ConfigParser,
		models:  c.ModelGenerator,
		routes:  c.RouteGenerator,
		store:   c.Store,
		boost:   c.Boost,
		metrics: c.Metrics,
		logger:  c.Logger,
	}
	if b.metrics == nil {
		b.metrics = telemetry.NewNoopCustomMetrics()
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b, nil
}

// SetProgress installs a callback invoked with human-readable progress lines
// during a build, e.g. for CLI output.
func (b *Builder) SetProgress(fn func(string)) {
	b.progress = fn
}

func (b *Builder) report(msg string) {
	if b.progress != nil {
		b.progress(msg)
	}
}

// Build assembles a server config from the input's merge sources. Sources are
// applied in a fixed order regardless of input field order: config file keys
// overlay the base document, then model tools, route tools, manual tools and
// finally the Boost catalog are appended. When the input requests saving, the
// result is also persisted through the config store.
func (b *Builder) Build(ctx context.Context, input *types.BuildServerInput) (*types.ServerConfig, error) {
	started := time.Now()

	if input.Name == "" && input.ConfigFile == "" {
		return nil, fmt.Errorf("server name is required")
	}

	cfg, err := b.baseConfig(input)
	if err != nil {
		return nil, err
	}

	if err := b.mergeModels(ctx, cfg, input.Models); err != nil {
		return nil, err
	}
	if input.IncludeRoutes {
		if err := b.mergeRoutes(ctx, cfg, input.RouteFilter); err != nil {
			return nil, err
		}
	}
	if len(input.ManualTools) > 0 {
		cfg.Tools = append(cfg.Tools, input.ManualTools...)
		b.metrics.RecordToolGeneration(ctx, "manual", len(input.ManualTools))
		b.report(fmt.Sprintf("Added %d manually defined tools", len(input.ManualTools)))
	}
	if len(input.Resources) > 0 {
		cfg.Resources = append(cfg.Resources, input.Resources...)
	}
	if len(input.Prompts) > 0 {
		cfg.Prompts = append(cfg.Prompts, input.Prompts...)
	}

	if input.IncludeBoost && b.boost != nil {
		before := len(cfg.Tools)
		cfg = b.boost.MergeBoostTools(cfg, true, b.progress)
		if added := len(cfg.Tools) - before; added > 0 {
			b.metrics.RecordToolGeneration(ctx, "boost", added)
			b.report(fmt.Sprintf("Merged %d Boost tools", added))
		}
	}

	if input.Save {
		if b.store == nil {
			return nil, fmt.Errorf("no config store configured, cannot save")
		}
		if !b.store.SaveConfig(cfg.Name, cfg) {
			return nil, fmt.Errorf("failed to save config for server %s", cfg.Name)
		}
		b.report(fmt.Sprintf("Saved config to %s", b.store.ConfigPath(cfg.Name)))
	}

	b.metrics.RecordBuild(ctx, cfg.Name, len(cfg.Tools), time.Since(started))
	b.logger.Info("server config built",
		zap.String("server", cfg.Name),
		zap.Int("tools", len(cfg.Tools)),
	)
	return cfg, nil
}

// baseConfig constructs the starting document and overlays the config file,
// if any. File keys override the base field for field: a name or version
// present in the file wins over the input's.
func (b *Builder) baseConfig(input *types.BuildServerInput) (*types.ServerConfig, error) {
	version := input.Version
	if version == "" {
		version = defaultVersion
	}
	cfg := &types.ServerConfig{
		Name:        input.Name,
		Version:     version,
		Description: input.Description,
		Tools:       []types.ToolDescriptor{},
		Resources:   []any{},
		Prompts:     []any{},
	}

	if input.ConfigFile == "" {
		return cfg, nil
	}

	doc, err := b.parser.ParseFile(input.ConfigFile)
	if err != nil {
		return nil, err
	}
	fileCfg, err := b.parser.ToServerConfig(doc)
	if err != nil {
		return nil, err
	}

	if fileCfg.Name != "" {
		cfg.Name = fileCfg.Name
	}
	if fileCfg.Version != "" {
		cfg.Version = fileCfg.Version
	}
	if fileCfg.Description != "" {
		cfg.Description = fileCfg.Description
	}
	cfg.Tools = append(cfg.Tools, fileCfg.Tools...)
	cfg.Resources = append(cfg.Resources, fileCfg.Resources...)
	cfg.Prompts = append(cfg.Prompts, fileCfg.Prompts...)

	b.report(fmt.Sprintf("Loaded %d tools from %s", len(fileCfg.Tools), input.ConfigFile))
	return cfg, nil
}

func (b *Builder) mergeModels(ctx context.Context, cfg *types.ServerConfig, models []string) error {
	if len(models) == 0 {
		return nil
	}
	if b.models == nil {
		return fmt.Errorf("no model introspector configured, cannot generate from models")
	}

	for _, entity := range models {
		tools, err := b.models.GenerateFromModel(entity)
		if err != nil {
			return err
		}
		cfg.Tools = append(cfg.Tools, tools...)
		b.metrics.RecordToolGeneration(ctx, "model", len(tools))
		b.report(fmt.Sprintf("Generated %d tools from model %s", len(tools), entity))
	}
	return nil
}

func (b *Builder) mergeRoutes(ctx context.Context, cfg *types.ServerConfig, filter string) error {
	if b.routes == nil {
		return fmt.Errorf("no route introspector configured, cannot generate from routes")
	}

	tools, err := b.routes.GenerateFromRoutes(nil)
	if err != nil {
		return err
	}
	if filter != "" {
		tools = filterRouteTools(tools, filter)
	}

	cfg.Tools = append(cfg.Tools, tools...)
	b.metrics.RecordToolGeneration(ctx, "route", len(tools))
	b.report(fmt.Sprintf("Generated %d tools from routes", len(tools)))
	return nil
}

// filterRouteTools keeps tools whose originating URI contains the filter
// substring.
func filterRouteTools(tools []types.ToolDescriptor, filter string) []types.ToolDescriptor {
	kept := make([]types.ToolDescriptor, 0, len(tools))
	for _, tool := range tools {
		uri, _ := tool.Metadata["uri"].(string)
		if strings.Contains(uri, filter) {
			kept = append(kept, tool)
		}
	}
	return kept
}

// RouteToolsForTable generates route tools directly from an analyzed route
// table, bypassing the configured introspector. Used by callers that already
// hold routes, e.g. the schema-file loader path.
func RouteToolsForTable(routes []introspect.RouteAnalysis) ([]types.ToolDescriptor, error) {
	g := generator.NewRouteToolGenerator(nil)
	return g.GenerateFromRoutes(routes)
}
