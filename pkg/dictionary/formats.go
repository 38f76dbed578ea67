package dictionary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// FileFormat represents the dictionary file formats approxdict handles
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTrie               // Compiled trie
	FormatText               // Tab separated word list
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTrie: {
		Format:      FormatTrie,
		Description: "Compiled Trie Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     24, // Header + root record
	},
	FormatText: {
		Format:      FormatText,
		Description: "Word List",
		Extensions:  []string{".txt", ".tsv"},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("format %d: %w", expectedFormat, approxerrors.ErrUnknownFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatTrie:
		return validateTrieFormat(filename, fileInfo.Size())
	case FormatText:
		return validateTextFormat(filename)
	}

	return nil
}

// validateTrieFormat checks that the declared string section fits the file
func validateTrieFormat(filename string, size int64) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var strs uint32
	if err := binary.Read(file, binary.LittleEndian, &strs); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}

	records := size - 4 - int64(strs)
	if records < 20 {
		return fmt.Errorf("%s declares %d label bytes in %d: %w", filename, strs, size, approxerrors.ErrTruncated)
	}
	if records%20 != 0 {
		return fmt.Errorf("%s has a partial record: %w", filename, approxerrors.ErrCorrupt)
	}

	log.Debugf("Trie file %s validated: %d label bytes, %d records", filename, strs, records/20)
	return nil
}

// validateTextFormat checks that the first non-blank line is a word list entry
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	sc := bufio.NewScanner(io.LimitReader(file, 64*1024))
	for sc.Scan() {
		line := bytes.TrimSuffix(sc.Bytes(), []byte("\r"))
		if len(line) == 0 {
			continue
		}
		if _, err := ParseEntry(string(line)); err != nil {
			return fmt.Errorf("text file %s: %w", filename, err)
		}
		log.Debugf("Text file %s validated", filename)
		return nil
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	return fmt.Errorf("text file %s has no entries: %w", filename, approxerrors.ErrMalformedEntry)
}

// DetectFileFormat identifies a file by its content. Extensions are not
// consulted, so a compiled trie is recognised under any name.
func DetectFileFormat(filename string) (FileFormat, error) {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	size := fileInfo.Size()

	if size >= supportedFormats[FormatTrie].MinSize && validateTrieFormat(filename, size) == nil {
		return FormatTrie, nil
	}
	if size >= supportedFormats[FormatText].MinSize && validateTextFormat(filename) == nil {
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s: %w", filename, approxerrors.ErrUnknownFormat)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
