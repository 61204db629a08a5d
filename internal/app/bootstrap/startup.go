// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/store/oauthstate"
	"github.com/parivartan/platform/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	// TTL indexes reap expired OAuth states on their own; this sweep
	// clears whatever accumulated while the service was down.
	if n, err := oauthstate.New(deps.MongoDatabase).CleanupExpired(ctx); err != nil {
		logger.Warn("oauth state cleanup failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("cleaned up expired oauth states", zap.Int64("removed", n))
	}

	if appCfg.GoogleClientID == "" {
		logger.Warn("google oauth is not configured; sign-in is disabled")
	}
	if appCfg.GeminiAPIKey == "" {
		logger.Info("gemini key not set; AI features run in fallback mode")
	}

	return nil
}
