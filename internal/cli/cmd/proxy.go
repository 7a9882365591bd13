package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/adshield/internal/infrastructure/config"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
)

var (
	proxyListen  string
	proxyMITM    bool
	proxyNoWatch bool
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the filtering HTTP proxy",
	Long: `Run an HTTP proxy that cancels tracker requests.

With proxy.mitm enabled, HTTPS tunnels are intercepted so player
responses can have their ad fields stripped and, with
proxy.sanitize_html, HTML documents get the cosmetic stylesheet.

Edits to the config file are applied without a restart, except for the
listen address.`,
	Args: cobra.NoArgs,
	RunE: runProxy,
}

func init() {
	rootCmd.AddCommand(proxyCmd)
	proxyCmd.Flags().StringVarP(&proxyListen, "listen", "l", "", "listen address (default from proxy.listen)")
	proxyCmd.Flags().BoolVar(&proxyMITM, "mitm", false, "intercept HTTPS tunnels")
	proxyCmd.Flags().BoolVar(&proxyNoWatch, "no-watch", false, "do not reload on config changes")
}

func runProxy(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	log := app.Logger()

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if days := app.Config.Database.RetentionDays; days > 0 {
		removed, err := app.StatsUC.Prune(ctx, days)
		if err != nil {
			log.Warn().Err(err).Msg("failed to prune block events")
		} else if removed > 0 {
			log.Info().Int64("removed", removed).Int("retention_days", days).Msg("pruned block events")
		}
	}

	proxyCfg := app.Config.ProxyConfig()
	if proxyListen != "" {
		proxyCfg.Listen = proxyListen
	}
	if cmd.Flags().Changed("mitm") {
		proxyCfg.MITM = proxyMITM
	}

	live := app.LiveShield()
	server := proxy.New(proxyCfg, live,
		proxy.WithPayloadSanitizer(live),
		proxy.WithHTMLSanitizer(live),
		proxy.WithLogger(log),
	)

	if app.Manager != nil && !proxyNoWatch {
		listen := app.Config.Proxy.Listen
		app.Manager.OnConfigChange(func(cfg *config.Config) {
			live.Reload(cfg)
			if cfg.Proxy.Listen != listen {
				log.Warn().Str("listen", cfg.Proxy.Listen).Msg("listen address changed, restart the proxy to apply it")
			}
			log.Info().Msg("shield reloaded")
		})
		if err := app.Manager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watching disabled")
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.ProxyBanner(server.Addr(), proxyCfg.MITM, proxyCfg.SanitizeHTML))
	log.Info().Str("version", app.BuildInfo.Short()).Str("listen", server.Addr()).Msg("proxy starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Debug().Msg("proxy shutting down")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
