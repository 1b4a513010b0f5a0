package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HendryAvila/prdgraph/internal/config"
	prdserver "github.com/HendryAvila/prdgraph/internal/server"
)

func serveCmd(v *viper.Viper) *cobra.Command {
	var saveOnExit bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg)

			s, sess, cleanup, err := prdserver.New(cfg, log)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			if saveOnExit && cfg.Document != "" {
				defer func() {
					if err := sess.Save(cfg.Document); err != nil {
						log.WithError(err).Error("saving document")
						return
					}
					log.WithField("path", cfg.Document).Info("document saved")
				}()
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- server.ServeStdio(s) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info("shutting down")
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&saveOnExit, "save", false, "write the document back to --document on exit")
	return cmd
}
