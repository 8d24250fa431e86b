package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ConcatTranscripts writes every .txt file under dir to w, each prefixed with
// a Title line derived from the filename stem. Files are visited in lexical
// order so output is deterministic.
func ConcatTranscripts(w io.Writer, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read transcripts dir: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return count, fmt.Errorf("read transcript %s: %w", entry.Name(), err)
		}
		stem := strings.TrimSuffix(entry.Name(), ".txt")
		if _, err := fmt.Fprintf(w, "Title: %s\n%s\n\n", stem, data); err != nil {
			return count, fmt.Errorf("write concatenated output: %w", err)
		}
		count++
	}
	return count, nil
}

// ConcatTranscriptsToFile concatenates dir's transcripts into outPath,
// overwriting any existing file. Returns how many transcripts were written.
func ConcatTranscriptsToFile(dir, outPath string) (int, error) {
	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	count, err := ConcatTranscripts(out, dir)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output file: %w", closeErr)
	}
	return count, err
}
