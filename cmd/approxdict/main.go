/*
Package main implements the approxdict compiler, search session and servers.

approxdict answers bounded Damerau-Levenshtein queries over a large static
dictionary. A word list is compiled once into a compact trie file, which is
then memory-mapped and searched without being parsed.

# Usage

Compile a tab separated word list:

	approxdict compile words.txt dict.bin

Search interactively or from a pipe:

	echo "approx 1 tset" | approxdict search dict.bin
	[{"word":"test","freq":10,"distance":1}]

Serve msgpack requests on stdin/stdout, or JSON over HTTP:

	approxdict serve dict.bin
	approxdict http dict.bin --addr :8337

Inspect a dictionary:

	approxdict info dict.bin
	approxdict dot words.txt | dot -Tsvg > trie.svg
	approxdict dump dict.bin > words.txt

# Configuration

Defaults are read from a TOML file, created on first run:

	[search]
	max_query_len = 256
	workers = 0

	[load]
	verify = false
	prefault = true

	[compile]
	canonical = false

	[server]
	http_addr = "127.0.0.1:8337"
	read_timeout_sec = 5
	write_timeout_sec = 10

Command line flags take precedence over the file.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/approxdict/internal/logger"
	"github.com/bastiangx/approxdict/pkg/config"
)

const (
	Version = "0.3.0"
	AppName = "approxdict"
	gh      = "https://github.com/bastiangx/approxdict"
)

var (
	debugMode  bool
	configPath string
	appConfig  = config.DefaultConfig()
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the subcommands; each one lives next to the package it drives.
func main() {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Approximate string search over a compiled dictionary",
		Long:          `Compiles word lists into a memory-mappable trie and answers bounded Damerau-Levenshtein queries against it`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(debugMode)
			cfg, path, err := config.LoadConfigWithPriority(configPath)
			if err != nil {
				log.Warnf("Failed to load config: %v. Using built-in defaults...", err)
				return
			}
			appConfig = cfg
			log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")

	rootCmd.AddCommand(createCompileCmd())
	rootCmd.AddCommand(createDotCmd())
	rootCmd.AddCommand(createSearchCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createHTTPCmd())
	rootCmd.AddCommand(createInfoCmd())
	rootCmd.AddCommand(createDumpCmd())
	rootCmd.AddCommand(createVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
