package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/filtering/converter"
)

var (
	exportFormat string
	exportPage   string
	exportOutput string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and export the rule tables",
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active rules for another engine",
	Long: `Render the built-in rules merged with the configured extras.

Formats:
  webkit  WebKit content blocker JSON (block + css-display-none rules)
  text    Adblock-style filter list
  css     The cosmetic stylesheet for --page (generic rules when empty)`,
	Args: cobra.NoArgs,
	RunE: runRulesExport,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesExportCmd)

	formats := make([]string, 0, len(converter.Formats))
	for _, f := range converter.Formats {
		formats = append(formats, string(f))
	}
	rulesExportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(converter.FormatWebKit),
		"output format: "+strings.Join(formats, ", "))
	rulesExportCmd.Flags().StringVarP(&exportPage, "page", "p", "", "page URL scoping the css format")
	rulesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
}

func runRulesExport(cmd *cobra.Command, _ []string) (err error) {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, createErr := os.Create(exportOutput)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", exportOutput, createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		w = f
	}

	return app.ExportUC.Execute(app.Ctx(), w, usecase.ExportInput{Format: exportFormat, PageURL: exportPage})
}
