// Package cli defines the skaff command tree.
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skaffio/skaff/internal/config"
	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/template/provider"
)

// Global flags.
var (
	globalConfigPath string
	globalNoColor    bool
	globalQuiet      bool
	globalDebug      bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "skaff",
	Short: "Project scaffolding from templates",
	Long: `skaff creates projects from templates published on GitHub or stored
locally. A template is a directory with a skaff.toml manifest describing its
parameters and file rules; skaff prompts for the parameters, renders the
template and writes the result.

Common usage:
  skaff create owner/repo my-project     Create a project from a GitHub template
  skaff create ./template my-project     Create from a local template directory
  skaff list                             List published templates
  skaff validate ./template              Validate a template directory`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
		if globalNoColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	path := globalConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.NewLoader().LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if globalQuiet {
		cfg.Output.Quiet = true
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = provider.GitHubTokenFromEnv()
	}
	return cfg, nil
}
