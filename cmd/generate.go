package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpforge/mcpforge/pkg/types"
)

var generateFromConfigCmd = &cobra.Command{
	Use:   "generate-from-config <path>",
	Short: "Generate a server config from a YAML or JSON config file",
	Long: "Parses a config file (yaml, yml or json), validates its structure and produces\n" +
		"a normalized server config document. The config is saved to the storage\n" +
		"directory under the server's name.",
	Args: cobra.ExactArgs(1),
	RunE: runGenerateFromConfig,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "2",
	},
}

var generateFromModelCmd = &cobra.Command{
	Use:   "generate-from-model <model>",
	Short: "Generate CRUD tools from a data model",
	Long: "Derives the five CRUD tool descriptors (list, show, create, update, delete)\n" +
		"for an entity declared in the schema file and merges them into a server config.",
	Args: cobra.ExactArgs(1),
	RunE: runGenerateFromModel,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "3",
	},
}

var generateFromRoutesCmd = &cobra.Command{
	Use:   "generate-from-routes",
	Short: "Generate tools from registered HTTP routes",
	Long: "Derives one tool descriptor per eligible route declared in the schema file\n" +
		"and merges them into a server config. Use --filter to keep only routes whose\n" +
		"URI contains a substring.",
	Args: cobra.NoArgs,
	RunE: runGenerateFromRoutes,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "4",
	},
}

var generateBatchCmd = &cobra.Command{
	Use:   "generate-batch <model,model,...>",
	Short: "Generate CRUD tools for multiple models at once",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerateBatch,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "1",
	},
}

var (
	generateFromConfigCmdName string
	generateCmdServerName     string
	generateCmdSave           bool
	generateFromRoutesFilter  string
)

func init() {
	generateFromConfigCmd.Flags().StringVar(
		&generateFromConfigCmdName,
		"name",
		"",
		"Override the server name from the config file",
	)

	for _, c := range []*cobra.Command{generateFromModelCmd, generateFromRoutesCmd, generateBatchCmd} {
		c.Flags().StringVar(
			&generateCmdServerName,
			"server",
			"",
			"Name of the server config to generate into (default: derived or 'mcp-server')",
		)
		c.Flags().BoolVar(
			&generateCmdSave,
			"save",
			false,
			"Save the generated config to the storage directory",
		)
	}
	generateFromRoutesCmd.Flags().StringVar(
		&generateFromRoutesFilter,
		"filter",
		"",
		"Only include routes whose URI contains this substring",
	)

	rootCmd.AddCommand(generateFromConfigCmd)
	rootCmd.AddCommand(generateFromModelCmd)
	rootCmd.AddCommand(generateFromRoutesCmd)
	rootCmd.AddCommand(generateBatchCmd)
}

// runBuild executes a build through a fresh runtime and renders the result.
func runBuild(cmd *cobra.Command, input *types.BuildServerInput) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	rt.builder.SetProgress(func(msg string) { cmd.Println(msg) })

	cfg, err := rt.builder.Build(cmd.Context(), input)
	if err != nil {
		return err
	}

	cmd.Printf("\nServer: %s (version %s)\n", cfg.Name, cfg.Version)
	cmd.Printf("Tools: %d\n", len(cfg.Tools))
	if !input.Save {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
	}
	return nil
}

func serverNameOrDefault() string {
	if generateCmdServerName != "" {
		return generateCmdServerName
	}
	return "mcp-server"
}

// runGenerateFromConfig drives the parser and store directly: unlike the
// build merge, the --name flag overrides the name found in the file.
func runGenerateFromConfig(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	doc, err := rt.parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	cfg, err := rt.parser.ToServerConfig(doc)
	if err != nil {
		return err
	}
	if generateFromConfigCmdName != "" {
		cfg.Name = generateFromConfigCmdName
	}

	if !rt.store.SaveConfig(cfg.Name, cfg) {
		return fmt.Errorf("failed to save config for server %s", cfg.Name)
	}

	cmd.Printf("Server: %s (version %s)\n", cfg.Name, cfg.Version)
	cmd.Printf("Tools: %d\n", len(cfg.Tools))
	cmd.Printf("Saved config to %s\n", rt.store.ConfigPath(cfg.Name))
	return nil
}

func runGenerateFromModel(cmd *cobra.Command, args []string) error {
	return runBuild(cmd, &types.BuildServerInput{
		Name:   serverNameOrDefault(),
		Models: []string{args[0]},
		Save:   generateCmdSave,
	})
}

func runGenerateFromRoutes(cmd *cobra.Command, args []string) error {
	return runBuild(cmd, &types.BuildServerInput{
		Name:          serverNameOrDefault(),
		IncludeRoutes: true,
		RouteFilter:   generateFromRoutesFilter,
		Save:          generateCmdSave,
	})
}

func runGenerateBatch(cmd *cobra.Command, args []string) error {
	models := make([]string, 0)
	for _, m := range strings.Split(args[0], ",") {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			models = append(models, trimmed)
		}
	}

	return runBuild(cmd, &types.BuildServerInput{
		Name:   serverNameOrDefault(),
		Models: models,
		Save:   generateCmdSave,
	})
}
