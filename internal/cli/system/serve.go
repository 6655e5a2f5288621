package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ratedzzz/small-steps/internal/api"
	"github.com/ratedzzz/small-steps/internal/cli"
)

type ServeCmd struct {
	Host      string `help:"Address to bind. Overrides api.host from the settings file."`
	Port      int    `help:"Port to listen on. Overrides api.port from the settings file."`
	NoMetrics bool   `help:"Disable the /metrics endpoint."`
}

// addr resolves the listen address from flags over settings
func (c *ServeCmd) addr(ctx *cli.Context) string {
	settings := ctx.Settings
	if c.Host != "" {
		settings.API.Host = c.Host
	}
	if c.Port != 0 {
		settings.API.Port = c.Port
	}
	return settings.Addr()
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is outside valid range (1-65535)", c.Port)
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	srv := api.NewServer(svc)
	if ctx.Settings.API.Metrics && !c.NoMetrics {
		srv.EnableMetrics()
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := c.addr(ctx)
	fmt.Printf("Serving smallsteps API on http://%s (Ctrl+C to stop)\n", addr)
	return srv.ListenAndServe(sigCtx, addr)
}
