// Package cmd provides the command line interface for mcpforge.
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/pkg/version"
)

const asciiArt = `
                            __
  __ _  ___ ___  / _| ___  _ __ __ _  ___
 /  ' \/ __/ _ \| |_ / _ \| '__/ _' |/ _ \
 | | | | (_| (_) |  _| (_) | | | (_| |  __/
 |_|_|_|\___\___/|_|  \___/|_|  \__, |\___|
                                |___/
`

// subCommandGroup determines how subcommands are grouped in the help text.
type subCommandGroup string

const (
	subCommandGroupBasic    subCommandGroup = "basic"
	subCommandGroupAdvanced subCommandGroup = "advanced"
)

var rootCmd = &cobra.Command{
	Use:     "mcpforge",
	Short:   "Generate MCP server configs from your application's models and routes",
	Version: version.GetVersion(),
	Long: "mcpforge inspects your application's data models and HTTP routes and derives\n" +
		"MCP server configuration documents: JSON-schema shaped tool descriptors persisted\n" +
		"as named config files and mirrored into a queryable database.\n",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SetUsageFunc(groupedUsageFunc)
}

// groupedUsageFunc renders subcommands grouped by their "group" annotation,
// ordered by their "order" annotation within each group.
func groupedUsageFunc(cmd *cobra.Command) error {
	if cmd != rootCmd {
		cmd.SetUsageFunc(nil)
		return cmd.Usage()
	}

	out := cmd.OutOrStderr()
	fmt.Fprintf(out, "Usage:\n  %s [command]\n", cmd.Use)

	groups := []struct {
		name  subCommandGroup
		title string
	}{
		{subCommandGroupBasic, "Basic Commands"},
		{subCommandGroupAdvanced, "Advanced Commands"},
	}
	for _, g := range groups {
		cmds := commandsInGroup(cmd, g.name)
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", g.title)
		for _, sub := range cmds {
			fmt.Fprintf(out, "  %-18s %s\n", sub.Name(), sub.Short)
		}
	}

	fmt.Fprintf(out, "\nFlags:\n%s", cmd.LocalFlags().FlagUsages())
	fmt.Fprintf(out, "\nUse \"%s [command] --help\" for more information about a command.\n", cmd.Use)
	return nil
}

func commandsInGroup(root *cobra.Command, group subCommandGroup) []*cobra.Command {
	var cmds []*cobra.Command
	for _, sub := range root.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		if subCommandGroup(sub.Annotations["group"]) == group {
			cmds = append(cmds, sub)
		}
	}
	sort.Slice(cmds, func(i, j int) bool {
		oi, _ := strconv.Atoi(cmds[i].Annotations["order"])
		oj, _ := strconv.Atoi(cmds[j].Annotations["order"])
		return oi < oj
	})
	return cmds
}

// displayError prints a typed error's message together with its category,
// stable code and remediation suggestions.
func displayError(cmd *cobra.Command, err error) {
	cmd.PrintErrf("Error: %s\n", err.Error())
	cmd.PrintErrf("Category: %s [%s]\n", errs.CategoryOf(err), errs.CodeOf(err))

	suggestions := errs.SuggestionsOf(err)
	if len(suggestions) > 0 {
		cmd.PrintErrln("Suggestions:")
		for i, s := range suggestions {
			cmd.PrintErrf("  %d. %s\n", i+1, s)
		}
	}
}

// Execute runs the root command. Any failure exits with code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		displayError(rootCmd, err)
		os.Exit(1)
	}
}
