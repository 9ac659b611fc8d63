// Root command for the omebridge CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Version is stamped into the version command output.
const Version = "v0.1.0"

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagUser      string
	flagJSON      bool
)

// configDataDir and configUsername hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir  string
	configUsername string
)

var rootCmd = &cobra.Command{
	Use:     "omebridge",
	Short:   "omebridge works with a local image repository",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configUsername = cfg.GetString(cfgKeyUsername)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.omebridge)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.omebridge-db)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "act as this username")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(kvCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(fileAttachCmd)
	rootCmd.AddCommand(fileDeleteCmd)
	rootCmd.AddCommand(imageImportCmd)
	rootCmd.AddCommand(imageDownloadCmd)
	rootCmd.AddCommand(roiClearCmd)
	rootCmd.AddCommand(callCmd)
}
