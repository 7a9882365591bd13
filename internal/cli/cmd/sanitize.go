package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/application/usecase"
)

var (
	sanitizeURL    string
	sanitizeKind   string
	sanitizeOutput string
	sanitizeQuiet  bool
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [file]",
	Short: "Remove ads from an HTML document or a player JSON payload",
	Long: `Run the shield over a saved document and print the result.

HTML documents get tracker resources neutralized, ad containers hidden and
the cosmetic stylesheet injected. JSON payloads get their ad fields
stripped. The input is read from stdin when no file (or "-") is given.

Examples:
  adshield sanitize --url https://news.example/ page.html > clean.html
  curl -s "$PLAYER_URL" | adshield sanitize --url https://www.youtube.com/ --kind json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSanitize,
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)
	sanitizeCmd.Flags().StringVarP(&sanitizeURL, "url", "u", "", "URL the document was served from (required)")
	sanitizeCmd.Flags().StringVarP(&sanitizeKind, "kind", "k", "auto", "document kind: auto, html or json")
	sanitizeCmd.Flags().StringVarP(&sanitizeOutput, "output", "o", "", "write the result to a file instead of stdout")
	sanitizeCmd.Flags().BoolVarP(&sanitizeQuiet, "quiet", "q", false, "do not print the summary")
	_ = sanitizeCmd.MarkFlagRequired("url")
}

func runSanitize(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	kind, err := parseDocumentKind(sanitizeKind)
	if err != nil {
		return err
	}
	body, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	result, err := app.SanitizeUC.Sanitize(app.Ctx(), usecase.SanitizeInput{URL: sanitizeURL, Body: body, Kind: kind})
	if err != nil {
		return err
	}

	if sanitizeOutput != "" {
		if err := os.WriteFile(sanitizeOutput, result.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", sanitizeOutput, err)
		}
	} else if _, err := cmd.OutOrStdout().Write(result.Body); err != nil {
		return err
	}

	if !sanitizeQuiet {
		fmt.Fprintln(cmd.ErrOrStderr(), app.Theme.SanitizeSummary(
			string(result.Kind), result.Changed, result.Skipped, result.Neutralized, result.Buried))
	}
	return nil
}

func parseDocumentKind(s string) (usecase.DocumentKind, error) {
	switch s {
	case "", "auto":
		return usecase.KindAuto, nil
	case "html":
		return usecase.KindHTML, nil
	case "json":
		return usecase.KindJSON, nil
	default:
		return "", fmt.Errorf("unknown document kind %q (want auto, html or json)", s)
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
