// Package app wires the services a console run shares: the effective
// configuration, the route table and the form submitter. They are built once
// at bootstrap, handed down explicitly and closed on shutdown.
package app

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/routes"
	"github.com/oakwood-commons/hris/internal/submit"
	"github.com/oakwood-commons/hris/pkg/settings"
)

// Context holds the per-run services.
type Context struct {
	Config    config.Config
	Routes    *routes.Table
	Submitter submit.Submitter
	Logger    logr.Logger
	DryRun    bool
}

// New builds the services for cfg. A dry run records submissions in the log
// instead of posting them; every other run talks to the configured server.
func New(cfg config.Config, run *settings.Run, log logr.Logger) (*Context, error) {
	if run == nil {
		run = settings.NewCliParams()
	}
	table, err := routes.New(cfg.Routes)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}

	var sub submit.Submitter
	if run.DryRun {
		sub = submit.NewDryRunSubmitter(table)
	} else {
		sub, err = submit.NewHTTPSubmitter(submit.HTTPConfig{
			BaseURL:    cfg.Server.BaseURL,
			Timeout:    cfg.Server.TimeoutDuration(),
			CSRFHeader: cfg.Server.CSRFHeader,
			CSRFToken:  cfg.Server.CSRFToken,
		}, table)
		if err != nil {
			return nil, fmt.Errorf("build submitter: %w", err)
		}
	}

	log.V(1).Info("services ready", "routes", len(table.Names()), "dry_run", run.DryRun)
	return &Context{
		Config:    cfg,
		Routes:    table,
		Submitter: sub,
		Logger:    log,
		DryRun:    run.DryRun,
	}, nil
}

// Close releases the submitter. It is safe to call on a nil Context and more
// than once.
func (c *Context) Close() error {
	if c == nil || c.Submitter == nil {
		return nil
	}
	err := c.Submitter.Close()
	c.Submitter = nil
	if err != nil {
		return fmt.Errorf("close submitter: %w", err)
	}
	return nil
}
