package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/infrastructure/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		result, err := app.SchemaUC.Execute(app.Ctx())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.ConfigFile)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file.

With --write the schema is saved next to the config file, where the
"#:schema" header of the generated config points editors to it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		result, err := app.SchemaUC.Execute(app.Ctx())
		if err != nil {
			return err
		}

		if !schemaWrite {
			fmt.Fprintln(cmd.OutOrStdout(), string(result.Schema))
			return nil
		}
		path, err := config.GenerateSchemaFile(result.ConfigFile)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Theme.RenderSuccess("Schema written to "+path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "write the schema next to the config file")
}
