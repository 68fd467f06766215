package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

func locateCmd(load ConfigLoader) *cobra.Command {
	var hint string

	c := &cobra.Command{
		Use:   "locate <grant-url>",
		Short: "Print the application PDF link found on a grant page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if hint != "" {
				cfg.Locator.LinkHint = hint
			}

			cache := locator.NoopCache()
			if cfg.Redis.Enabled() {
				opts, err := redis.ParseURL(cfg.Redis.URL)
				if err != nil {
					return fmt.Errorf("parsing redis url: %w", err)
				}
				client := redis.NewClient(opts)
				defer client.Close()
				cache = locator.NewRedisCache(client, cfg.Locator.CacheTTL)
			}

			loc := locator.New(locator.Config{
				UserAgent: cfg.Locator.UserAgent,
				LinkHint:  cfg.Locator.LinkHint,
				Timeout:   cfg.Locator.Timeout,
			})

			link, err := service.NewApplicationLinkService(loc, cache).Locate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), link.PDFLink)
			return err
		},
	}

	c.Flags().StringVar(&hint, "hint", "", "Anchor text to look for (default from LOCATOR_LINK_HINT)")
	return c
}
