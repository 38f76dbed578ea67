package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func createInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <dict.bin>",
		Short: "Describe and validate a dictionary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict := loadDictionary(args[0])
			defer dict.Close()

			info := dict.info
			log.Print("Dictionary", "path", info.Path)
			log.Print("", "records", info.Records, "words", info.Words)
			log.Print("", "strings", info.StringsSize, "size", info.Size)
			log.Print("", "digest", info.Digest)

			if err := dict.mapping.View().Validate(); err != nil {
				return fmt.Errorf("validate %s: %w", info.Path, err)
			}
			log.Print("", "valid", true)
			return nil
		},
	}
}

func createDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <dict.bin>",
		Short: "Print every word of a dictionary as a word list",
		Long:  `Writes "word<TAB>frequency" lines in trie order. The output compiles back to an equivalent dictionary.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict := loadDictionary(args[0])
			defer dict.Close()

			w := bufio.NewWriter(cmd.OutOrStdout())
			dict.mapping.View().Walk(func(word []byte, freq uint32) bool {
				w.Write(word)
				w.WriteByte('\t')
				w.WriteString(strconv.FormatUint(uint64(freq), 10))
				w.WriteByte('\n')
				return true
			})
			return w.Flush()
		},
	}
}
