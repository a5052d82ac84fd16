package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/logger"
	"github.com/oshokin/authcode-grabber/internal/service/authcode"
	http_transport "github.com/oshokin/authcode-grabber/internal/transport/http"
	"github.com/oshokin/authcode-grabber/internal/utils"
	"github.com/oshokin/authcode-grabber/internal/version"
)

const (
	// applicationName is reported in the User-Agent of outgoing requests.
	applicationName = "authcode-grabber"

	// dumpConfigEnv makes the root command print the effective configuration as JSON and exit.
	dumpConfigEnv = "AUTHCODE_GRABBER_DUMP_CONFIG"
)

// ExecuteRootCommand runs one authorization attempt and prints the received code to stdout.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	if os.Getenv(dumpConfigEnv) != "" {
		if err := dumpConfig(os.Stdout, cfg); err != nil {
			logger.Fatalf(ctx, "Failed to dump configuration: %v", err)
		}

		return
	}

	service, err := newAuthorizationService(cfg, os.Stderr)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authorization service: %v", err)
	}

	code, err := service.RequestAuthorizationCode(ctx, cfg.ParsedTimeout)
	if err != nil {
		logger.Fatalf(ctx, "Authorization failed: %v", err)
	}

	fmt.Fprintln(os.Stdout, code) //nolint:errcheck // Nothing to do if stdout is gone.
}

func newAuthorizationService(cfg *config.Config, progressWriter io.Writer) (*authcode.ServiceImpl, error) {
	userAgentProvider := utils.NewApplicationUserAgentProvider(applicationName, version.Short())
	httpClient := http_transport.NewClient(userAgentProvider)

	opener, err := authcode.NewBrowserOpener(cfg.Browser)
	if err != nil {
		return nil, err
	}

	var observer authcode.Observer = authcode.LogObserver{}
	if cfg.ShowProgress {
		observer = authcode.NewProgressObserver(observer, progressWriter)
	}

	resolver := authcode.NewEndpointResolver(cfg, httpClient)

	return authcode.NewService(cfg, opener, observer, resolver)
}

func dumpConfig(w io.Writer, cfg *config.Config) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(cfg)
}
