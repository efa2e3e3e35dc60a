package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var integrateBoostCmd = &cobra.Command{
	Use:   "integrate-boost [server]",
	Short: "Merge Laravel Boost tools into a server config",
	Long: "Merges the Laravel Boost tool catalog into a stored server config.\n" +
		"If Boost is not installed, an install through the package manager is attempted.\n" +
		"Merging twice duplicates the Boost tools, so a re-merge asks for confirmation.",
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrateBoost,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "5",
	},
}

var (
	integrateBoostCmdCheck   bool
	integrateBoostCmdInstall bool
)

func init() {
	integrateBoostCmd.Flags().BoolVar(
		&integrateBoostCmdCheck,
		"check",
		false,
		"Only report whether Boost is installed, without merging",
	)
	integrateBoostCmd.Flags().BoolVar(
		&integrateBoostCmdInstall,
		"install",
		false,
		"Only install Boost, without merging",
	)

	rootCmd.AddCommand(integrateBoostCmd)
}

func runIntegrateBoost(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	progress := func(msg string) { cmd.Println(msg) }

	if integrateBoostCmdCheck {
		if rt.boost.IsInstalled() {
			cmd.Println("Laravel Boost is installed.")
		} else {
			cmd.Println("Laravel Boost is NOT installed.")
		}
		return nil
	}

	if integrateBoostCmdInstall {
		if !rt.boost.InstallBoost(progress) {
			return fmt.Errorf("failed to install Laravel Boost")
		}
		cmd.Println("Laravel Boost is installed.")
		return nil
	}

	serverName := "mcp-server"
	if len(args) > 0 {
		serverName = args[0]
	}

	cfg, ok := rt.store.LoadConfig(serverName)
	if !ok {
		return fmt.Errorf("no stored config found for server %s", serverName)
	}

	// Merging is not idempotent: warn and confirm when Boost tools are
	// already present.
	if rt.boost.HasBoostTools(cfg.Tools) {
		cmd.Printf("Server %s already has Boost tools. Merging again will duplicate them.\n", serverName)
		cmd.Print("Continue? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	before := len(cfg.Tools)
	cfg = rt.boost.MergeBoostTools(cfg, true, progress)
	added := len(cfg.Tools) - before
	if added == 0 {
		return fmt.Errorf("no Boost tools were merged (is Boost installed?)")
	}

	if !rt.store.SaveConfig(cfg.Name, cfg) {
		return fmt.Errorf("failed to save config for server %s", cfg.Name)
	}
	cmd.Printf("Merged %d Boost tools into server %s\n", added, cfg.Name)
	return nil
}
