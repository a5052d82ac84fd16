package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/authcode-grabber/internal/app"
	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "authcode-grabber [flags]",
		Short: "Obtain an OAuth 2.0 authorization code through the browser.",
		Long: `Authcode Grabber performs the client side of the OAuth 2.0 authorization code flow.

It starts a short-lived local listener for the redirect URI, opens the authorization
page in a browser and waits until the authorization server redirects back.
The received code is printed to stdout.

The tool does not exchange the code for tokens.`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.IntP(
		"timeout",
		"t",
		0,
		"seconds to wait for the authorization callback.")

	rootCmdFlags.IntP(
		"port",
		"p",
		0,
		"local port of the callback listener, 0 picks a free port.")

	rootCmdFlags.String(
		"client-id",
		"",
		"OAuth client identifier.")

	rootCmdFlags.String(
		"auth-url",
		"",
		"authorization endpoint URL.")

	rootCmdFlags.String(
		"issuer",
		"",
		"OpenID Connect issuer URL, the authorization endpoint is discovered from it.")

	rootCmdFlags.StringP(
		"browser",
		"b",
		"",
		"how to open the authorization page: system, isolated or none.")

	rootCmdFlags.Bool(
		"progress",
		false,
		"show a spinner while waiting for the callback.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		seconds, _ := flags.GetInt("timeout")
		cfg.Timeout = (time.Duration(seconds) * time.Second).String()
	}

	if flag := flags.Lookup("port"); flag != nil && flag.Changed {
		cfg.CallbackPort, _ = flags.GetInt("port")
	}

	if flag := flags.Lookup("client-id"); flag != nil && flag.Changed {
		cfg.ClientID, _ = flags.GetString("client-id")
	}

	if flag := flags.Lookup("auth-url"); flag != nil && flag.Changed {
		cfg.AuthorizationURL, _ = flags.GetString("auth-url")
	}

	if flag := flags.Lookup("issuer"); flag != nil && flag.Changed {
		cfg.IssuerURL, _ = flags.GetString("issuer")
	}

	if flag := flags.Lookup("browser"); flag != nil && flag.Changed {
		cfg.Browser, _ = flags.GetString("browser")
	}

	if flag := flags.Lookup("progress"); flag != nil && flag.Changed {
		cfg.ShowProgress, _ = flags.GetBool("progress")
	}

	return config.ValidateConfig(cfg)
}
