package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruminaider/coach-admin/internal/config"
	"github.com/ruminaider/coach-admin/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage coach-admin configuration",
	Long:  "Commands for creating and inspecting ~/.coach-admin/config.yaml.",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = paths.ConfigFile()
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(redact(cfg))
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// redact hides the API token.
func redact(cfg config.Config) config.Config {
	if cfg.API.Token != "" {
		cfg.API.Token = "********"
	}
	return cfg
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
