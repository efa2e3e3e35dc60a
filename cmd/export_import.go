package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mcpforge/mcpforge/internal/db"
	"github.com/mcpforge/mcpforge/internal/migrations"
	"github.com/mcpforge/mcpforge/internal/service/exportimport"
	"github.com/mcpforge/mcpforge/internal/service/server"
)

var exportServerCmd = &cobra.Command{
	Use:   "export-server <server-id-or-name>",
	Short: "Export a server record to a snapshot file",
	Long: "Exports a server record and its tools to a timestamped JSON snapshot file\n" +
		"under the export directory.",
	Args: cobra.ExactArgs(1),
	RunE: runExportServer,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "3",
	},
}

var importServerCmd = &cobra.Command{
	Use:   "import-server <file>",
	Short: "Import a server record from a snapshot file",
	Long: "Imports a snapshot file, upserting the server record and its tools by name.\n" +
		"Use --name to import under a different server name.",
	Args: cobra.ExactArgs(1),
	RunE: runImportServer,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "4",
	},
}

var (
	exportServerCmdPath string
	importServerCmdName string
)

func init() {
	exportServerCmd.Flags().StringVar(
		&exportServerCmdPath,
		"path",
		"",
		fmt.Sprintf("Export directory (overrides env var %s)", ExportPathEnvVar),
	)
	importServerCmd.Flags().StringVar(
		&importServerCmdName,
		"name",
		"",
		"Import the server under this name instead of the snapshot's",
	)

	rootCmd.AddCommand(exportServerCmd)
	rootCmd.AddCommand(importServerCmd)
}

// newExportImportService connects to the DB and builds the export/import
// service for one-shot CLI use.
func newExportImportService(exportDir string) (*exportimport.Service, *server.ServerService, error) {
	_ = godotenv.Load()

	dbConn, err := db.NewDBConnection(os.Getenv(DBUrlEnvVar))
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Migrate(dbConn); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	svc := exportimport.NewService(&exportimport.ServiceConfig{
		DB:        dbConn,
		Fs:        afero.NewOsFs(),
		ExportDir: exportDir,
	})
	return svc, server.NewServerService(dbConn), nil
}

func runExportServer(cmd *cobra.Command, args []string) error {
	exportDir := exportServerCmdPath
	if exportDir == "" {
		exportDir = exportPath()
	}

	svc, servers, err := newExportImportService(exportDir)
	if err != nil {
		return err
	}

	// Accept either a numeric record ID or a server name.
	name := args[0]
	if id, convErr := strconv.ParseUint(name, 10, 32); convErr == nil {
		record, err := servers.Get(uint(id))
		if err != nil {
			return err
		}
		name = record.Name
	}

	path, err := svc.ExportServer(name)
	if err != nil {
		return err
	}
	cmd.Printf("Server %s exported to %s\n", name, path)
	return nil
}

func runImportServer(cmd *cobra.Command, args []string) error {
	svc, _, err := newExportImportService(exportPath())
	if err != nil {
		return err
	}

	imported, err := svc.ImportServer(args[0], importServerCmdName)
	if err != nil {
		return err
	}
	cmd.Printf("Server %s imported with %d tools\n", imported.Name, len(imported.Tools))
	return nil
}
