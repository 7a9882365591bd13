package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/cli/styles"
)

var (
	classifyPage string
	classifyJSON bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Show the verdict for URLs",
	Long: `Classify each URL and show the verdict with the rule that decided it.

Examples:
  adshield classify https://www.google-analytics.com/analytics.js
  adshield classify --page https://www.youtube.com/ https://i.ytimg.com/vi/x/hq.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyPage, "page", "p", "", "page the URLs are loaded from (default: each URL itself)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print JSON lines")
}

type classifyResult struct {
	URL     string `json:"url"`
	Page    string `json:"page"`
	Special bool   `json:"special_site"`
	Verdict string `json:"verdict"`
	Table   string `json:"table,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := styles.NewClassifyRenderer(app.Theme)
	enc := json.NewEncoder(out)

	for i, rawURL := range args {
		result, err := app.ClassifyUC.Execute(app.Ctx(), usecase.ClassifyInput{URL: rawURL, PageURL: classifyPage})
		if err != nil {
			return err
		}
		if classifyJSON {
			if err := enc.Encode(classifyResult{
				URL:     result.URL,
				Page:    result.Site.Hostname,
				Special: result.Site.IsSpecialSite,
				Verdict: result.Match.Verdict.String(),
				Table:   string(result.Match.Table),
				Pattern: result.Match.Pattern,
			}); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, renderer.Render(result.URL, result.Site, result.Match))
	}
	return nil
}
