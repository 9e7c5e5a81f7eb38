package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/devmole/internal/config"
	"github.com/lakshaymaurya-felt/devmole/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the user configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file in your home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.InitUserConfig()
		if err != nil {
			return err
		}
		fmt.Println("  Created", ui.Accent.Render(path))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user config file.

Keys: default_path, exclude_types, exclude_dirs, max_concurrent,
max_depth, max_files, verbose. List values are comma-separated.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetUserValue(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("  Set %s = %s\n", ui.Accent.Render(args[0]), args[1])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current user configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := config.UserConfig()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(f, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Println("  " + string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
