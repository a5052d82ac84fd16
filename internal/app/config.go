package app

import (
	"context"

	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/logger"
)

// ExecuteConfigInitCommand writes the default configuration file to path.
func ExecuteConfigInitCommand(ctx context.Context, path string, overwrite bool) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path, overwrite); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to %s", path)
}
