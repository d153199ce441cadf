// Package charset builds the character inventory a font atlas must
// cover. It walks translation corpora, collects every non-whitespace
// rune that appears in a translation, and writes the sorted set to a
// single file for the atlas builder.
package charset

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"gloss/internal/logging"
	"gloss/internal/records"
)

// Result summarizes one inventory run.
type Result struct {
	Files int
	Runes int
}

// Collect scans every .json corpus file under each root, gathers the
// runes used by translated text plus the contents of the optional
// symbols file, and writes them NFC-normalized and sorted to output.
// Files that fail to parse are logged and skipped rather than aborting
// the inventory.
func Collect(roots []string, symbolsPath, output string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	set := make(map[rune]struct{})
	var result Result

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
				return nil
			}
			entries, err := records.Load(path)
			if err != nil {
				logger.Warn("skipping unparseable corpus file",
					logging.String("path", path), logging.Error(err))
				return nil
			}
			result.Files++
			for _, entry := range entries {
				addRunes(set, entry.Translation)
			}
			return nil
		})
		if err != nil {
			return Result{}, err
		}
	}

	if symbolsPath != "" {
		data, err := os.ReadFile(symbolsPath)
		if err != nil {
			return Result{}, fmt.Errorf("read symbols file: %w", err)
		}
		addRunes(set, string(data))
	}

	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(string(runes)), 0o644); err != nil {
		return Result{}, fmt.Errorf("write character set: %w", err)
	}
	result.Runes = len(runes)
	return result, nil
}

func addRunes(set map[rune]struct{}, text string) {
	for _, r := range norm.NFC.String(text) {
		if unicode.IsSpace(r) {
			continue
		}
		set[r] = struct{}{}
	}
}
