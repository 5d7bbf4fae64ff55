package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"skillsmith/internal/config"
	"skillsmith/internal/logger"
	"skillsmith/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "skillsmith",
	Short: "Skill tree manager for AI coding agents",
	Long: ui.Logo() + `

  Keeps your agent's skill tree in shape: set it up from a backup
  repository, forge new skills, copy in your own, and keep the agent's
  manifest in sync.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetFormat(viper.GetString("log_format"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.InitViper()

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skillsmith %s\n", Version)
	},
}

// exitWithError prints an error and exits
func exitWithError(msg string) {
	fmt.Fprintln(os.Stderr, ui.Error.Render("Error: "+msg))
	os.Exit(1)
}

// resolvePaths returns global or project-local paths per the --local flag
// convention shared by several commands.
func resolvePaths(settings *config.Settings, local bool) (*config.Paths, error) {
	if local {
		return config.GetLocalPaths(settings.AgentDirName)
	}
	return config.GetPaths(settings.AgentDirName)
}
