package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/approxdict/internal/cli"
	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/server"
)

func createSearchCmd() *cobra.Command {
	var maxQueryLen int

	cmd := &cobra.Command{
		Use:   "search <dict.bin>",
		Short: "Answer \"approx <max_dist> <word>\" lines from stdin with JSON arrays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sigHandler()
			dict := loadDictionary(args[0], approx.WithMaxQueryLen(maxQueryLen))
			defer dict.Close()

			return cli.NewSession(dict.searcher, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}
	cmd.Flags().IntVar(&maxQueryLen, "max-query-len", 0, "Longest accepted query in bytes (default from config)")
	return cmd
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <dict.bin>",
		Short: "Serve msgpack requests on stdin/stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sigHandler()
			dict := loadDictionary(args[0])
			defer dict.Close()

			log.Debug("spawning IPC")
			return server.NewServer(dict.searcher, dict.info, cmd.InOrStdin(), cmd.OutOrStdout()).Start()
		},
	}
}

func createHTTPCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http <dict.bin>",
		Short: "Serve JSON searches over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dict := loadDictionary(args[0])
			defer dict.Close()

			cfg := appConfig.Server
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			srv := server.NewHTTPServer(dict.searcher, dict.info, server.HTTPConfig{
				Addr:         cfg.HTTPAddr,
				ReadTimeout:  cfg.ReadTimeout(),
				WriteTimeout: cfg.WriteTimeout(),
			})
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
