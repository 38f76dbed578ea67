package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/approxdict/internal/logger"
	"github.com/bastiangx/approxdict/internal/utils"
	"github.com/bastiangx/approxdict/pkg/dictionary"
)

func createCompileCmd() *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "compile <words.txt> <dict.bin>",
		Short: "Compile a word list into a dictionary file",
		Long: `Reads "word<TAB>frequency" lines and writes the encoded trie.
Malformed lines are skipped with a warning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if status := utils.CheckDirStatus(filepath.Dir(args[1]), false); !status.Writable {
				return fmt.Errorf("cannot write to %s: %w", status.Path, status.Err)
			}

			opts := appConfig.CompileOptions()
			if cmd.Flags().Changed("canonical") {
				opts.Canonical = canonical
			}
			opts.Logger = logger.New("compile")

			stats, err := dictionary.CompileFile(args[0], args[1], opts)
			if err != nil {
				return err
			}
			if stats.Malformed > 0 {
				log.Warnf("Skipped %d malformed lines of %d", stats.Malformed, stats.Lines)
			}
			log.Print("Compiled", "words", stats.Words, "nodes", stats.Nodes,
				"bytes", stats.Bytes, "took", stats.Elapsed, "out", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Sort and deduplicate entries so the output does not depend on input order")
	return cmd
}

func createDotCmd() *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "dot <words.txt>",
		Short: "Print the trie built from a word list as a graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open word list: %w", err)
			}
			defer f.Close()

			b, _, err := dictionary.Build(f, dictionary.CompileOptions{
				Canonical: canonical,
				Logger:    logger.New("dot"),
			})
			if err != nil {
				return err
			}
			return b.WriteDot(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Insert entries sorted and deduplicated")
	return cmd
}
