// Package cmd implements the CLI commands for the marketplace gateway.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "marketplace-gateway",
	Short: "Authenticated gateway to a commerce platform's seller API",
	Long: "marketplace-gateway keeps one seller account's OAuth credentials fresh\n" +
		"and exposes profile, item search and permission checks over HTTP and\n" +
		"from the command line.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the config when present")
	rootCmd.PersistentFlags().String("log-level", "", "override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")

	for _, name := range []string{"config", "env-file", "log-level", "output"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(
		serveCmd(),
		authCmd(),
		profileCmd(),
		itemsCmd(),
		versionCmd(),
	)
}

func initConfig() {
	viper.SetEnvPrefix("MGW")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
