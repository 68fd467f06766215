package discovery

import (
	"github.com/WanderingWalnut/Grantly/core/config"
	"github.com/WanderingWalnut/Grantly/internal/search"
)

// FromConfig builds the Finder selected by the loaded configuration. The
// search client is only constructed in live mode, so mock mode runs without
// credentials.
func FromConfig(cfg config.Config) (Finder, error) {
	mode, err := ParseMode(cfg.Discovery.Mode)
	if err != nil {
		return nil, err
	}
	strategy, err := ParseQueryStrategy(cfg.Discovery.QueryStrategy)
	if err != nil {
		return nil, err
	}

	var client search.Client
	if mode == ModeLive {
		client, err = search.NewClient(search.Config{
			APIKey:  cfg.Search.APIKey,
			BaseURL: cfg.Search.BaseURL,
			Timeout: cfg.Search.Timeout,
		})
		if err != nil {
			return nil, err
		}
	}

	return NewFinder(Config{
		Mode:             mode,
		DatasetPath:      cfg.Discovery.DatasetPath,
		QueryStrategy:    strategy,
		SearchDomains:    cfg.Discovery.SearchDomains,
		TrustedDomains:   cfg.Discovery.TrustedDomains,
		AllowedDomains:   cfg.Discovery.AllowedDomains,
		MaxTokensPerPage: cfg.Search.MaxTokensPerPage,
	}, client)
}
