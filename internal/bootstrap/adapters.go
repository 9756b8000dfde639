package bootstrap

import (
	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

// SetupAdapters builds every source adapter. Adapters with missing
// credentials are still constructed; they skip their fetches at run time so
// one unconfigured provider never blocks the others.
func SetupAdapters(cfg *config.Config, log logger.Logger) []provider.Adapter {
	return []provider.Adapter{
		provider.NewAdzunaAdapter(cfg.Providers.Adzuna, cfg.Import, log),
		provider.NewJoobleAdapter(cfg.Providers.Jooble, cfg.Import, log),
		provider.NewJSearchAdapter(cfg.Providers.JSearch, cfg.Import, log),
	}
}
