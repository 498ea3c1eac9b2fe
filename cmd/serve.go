package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datainsights/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		addr := c.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		srv, err := web.New(web.Config{
			Addr:        addr,
			MaxUploadMB: c.MaxUploadMB,
			Analysis:    analysisOptions(c),
			AccessLog:   os.Stderr,
		}, newRenderer(c), logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard listening on %s\n", addr)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
}
