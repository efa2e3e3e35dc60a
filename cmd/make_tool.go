package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mcpforge/mcpforge/internal/generator"
)

var makeToolCmd = &cobra.Command{
	Use:   "make-tool <name>",
	Short: "Generate a tool handler stub file",
	Long: "Generates a Go source stub implementing a tool handler. The namespace is a\n" +
		"slash-separated directory path; directory-traversal sequences are stripped.",
	Args: cobra.ExactArgs(1),
	RunE: runMakeTool,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "2",
	},
}

var (
	makeToolCmdDescription string
	makeToolCmdNamespace   string
)

func init() {
	makeToolCmd.Flags().StringVar(
		&makeToolCmdDescription,
		"description",
		"",
		"Description of the tool",
	)
	makeToolCmd.Flags().StringVar(
		&makeToolCmdNamespace,
		"namespace",
		generator.DefaultToolNamespace,
		"Directory to write the stub under",
	)

	rootCmd.AddCommand(makeToolCmd)
}

func runMakeTool(cmd *cobra.Command, args []string) error {
	path, err := generator.WriteToolStub(afero.NewOsFs(), args[0], generator.StubOptions{
		Namespace:   makeToolCmdNamespace,
		Description: makeToolCmdDescription,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Tool stub created: %s\n", path)
	return nil
}
