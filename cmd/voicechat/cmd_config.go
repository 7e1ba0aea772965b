package main

import (
	"github.com/spf13/cobra"

	"jojo-client/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved client configuration",
	Long:  `Display the client configuration after environment variables and .env files are applied.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "settings-path",
	Short: "Print the default settings file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.DefaultSettingsPath()
		if err != nil {
			return err
		}
		cmd.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg)
}
