package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/authcode-grabber/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	overwriteConfig bool

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Writes the built-in configuration to the file given by --config,
or to the default configuration file in the current directory.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		// The configuration file may not exist yet.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, overwriteConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolVarP(
		&overwriteConfig,
		"force",
		"f",
		false,
		"overwrite an existing configuration file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
