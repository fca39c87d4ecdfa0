package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Prints the merged configuration from file, environment, and defaults. The admin token is redacted.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		shown := *cfg
		if shown.Server.AdminToken != "" {
			shown.Server.AdminToken = "********"
		}

		out, err := yaml.Marshal(shown)
		if err != nil {
			return eris.Wrap(err, "config show")
		}

		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
