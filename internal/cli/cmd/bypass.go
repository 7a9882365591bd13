package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/cli/styles"
)

var bypassReason string

var bypassCmd = &cobra.Command{
	Use:   "bypass",
	Short: "Disable the shield on specific sites",
	Long: `Manage the sites on which the shield is disabled.

A bypassed host also covers its subdomains. A running proxy picks up
changes within half a minute.`,
}

var bypassAddCmd = &cobra.Command{
	Use:   "add <host|url>",
	Short: "Disable the shield on a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		bypass, err := app.BypassUC.Add(app.Ctx(), args[0], bypassReason)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewBypassRenderer(app.Theme).RenderAdded(bypass))
		return nil
	},
}

var bypassRemoveCmd = &cobra.Command{
	Use:     "remove <host|url>",
	Aliases: []string{"rm"},
	Short:   "Enable the shield on a site again",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if err := app.BypassUC.Remove(app.Ctx(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewBypassRenderer(app.Theme).RenderRemoved(args[0]))
		return nil
	},
}

var bypassListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the sites where the shield is disabled",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		list, err := app.BypassUC.List(app.Ctx())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewBypassRenderer(app.Theme).RenderList(list))
		return nil
	},
}

var bypassCheckCmd = &cobra.Command{
	Use:   "check <host|url>",
	Short: "Report whether the shield is disabled on a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		bypassed, err := app.BypassUC.IsBypassed(app.Ctx(), args[0])
		if err != nil {
			return err
		}
		if bypassed {
			fmt.Fprintln(cmd.OutOrStdout(), app.Theme.RenderInfo("Shield disabled on "+args[0]))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), app.Theme.RenderSuccess("Shield active on "+args[0]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bypassCmd)
	bypassCmd.AddCommand(bypassAddCmd, bypassRemoveCmd, bypassListCmd, bypassCheckCmd)
	bypassAddCmd.Flags().StringVarP(&bypassReason, "reason", "r", "", "why the site is bypassed")
}
