package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errReported marks failures already shown to the user.
var errReported = errors.New("reported")

var (
	configPath string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:           "coach-admin",
	Short:         "Administer the coaching platform from the terminal",
	Long:          "coach-admin browses coupons, transactions, coaches, products, users and programs of the coaching platform, and creates coupons scoped to searchable selections of products and users.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coach-admin %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default ~/.coach-admin/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the API base URL")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(couponCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(fixturesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
