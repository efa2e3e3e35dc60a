package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpforge/mcpforge/pkg/types"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive wizard to build a server config",
	Long: "Walks through building a server config: server name, models to generate CRUD\n" +
		"tools for, route inclusion and the Boost integration, then saves the result.",
	Args: cobra.NoArgs,
	RunE: runSetup,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "6",
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	prompt := func(question, fallback string) string {
		if fallback != "" {
			cmd.Printf("%s [%s]: ", question, fallback)
		} else {
			cmd.Printf("%s: ", question)
		}
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return fallback
		}
		return answer
	}
	confirm := func(question string) bool {
		answer := prompt(question+" (y/n)", "n")
		return strings.ToLower(answer) == "y"
	}

	cmd.Print(asciiArt)
	cmd.Println("Let's build an MCP server config.")
	cmd.Println()

	input := &types.BuildServerInput{
		Name:        prompt("Server name", "mcp-server"),
		Version:     prompt("Version", "1.0.0"),
		Description: prompt("Description", ""),
		Save:        true,
	}

	modelList := prompt("Models to generate CRUD tools for (comma-separated, empty for none)", "")
	for _, m := range strings.Split(modelList, ",") {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			input.Models = append(input.Models, trimmed)
		}
	}

	if confirm("Generate tools from HTTP routes?") {
		input.IncludeRoutes = true
		input.RouteFilter = prompt("Route URI filter (empty for all routes)", "")
	}

	input.IncludeBoost = confirm("Include Laravel Boost tools?")

	cmd.Println()
	return runBuild(cmd, input)
}
