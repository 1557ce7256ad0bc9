package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm"
	"github.com/soraterm/soraterm/core"
	"github.com/soraterm/soraterm/internal/appconfig"
	"github.com/soraterm/soraterm/schema"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var source string
	var socketPath string
	var queueDepth int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the event core headless",
		Long: "Run the dispatch loop with the configured external event source.\n" +
			"Terminals are headless; use this to exercise event injection from\n" +
			"scripts, stdin pipes, or socket clients.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if source != "" {
				cfg.Events.Source = source
			}
			if socketPath != "" {
				cfg.Events.SocketPath = socketPath
			}
			if queueDepth > 0 {
				cfg.Events.QueueDepth = queueDepth
			}
			if err := appconfig.Validate(cfg); err != nil {
				return err
			}

			app, err := soraterm.New(soraterm.Config{
				Source:     schema.ExternalSource(cfg.Events.Source),
				SocketPath: cfg.Events.SocketPath,
				QueueDepth: cfg.Events.QueueDepth,
				Workspace: core.Config{
					DefaultProfile: schema.ProfileName(cfg.DefaultProfile),
					Profiles:       cfg.SchemaProfiles(),
				},
			}, soraterm.Deps{
				Logger: logger,
			})
			if err != nil {
				return err
			}
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			err = app.Wait()
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = app.Stop(stopCtx)
			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	cmd.Flags().StringVar(&source, "events", "", "external event source: none, stdio, or socket")
	cmd.Flags().StringVar(&socketPath, "event-socket", "", "socket path for the socket source")
	cmd.Flags().IntVar(&queueDepth, "queue-depth", 0, "dispatch queue depth")
	return cmd
}
