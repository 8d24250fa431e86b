package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const snapshotRule = "=================================================="

// SnapshotOptions controls the project snapshot walk.
type SnapshotOptions struct {
	// IgnoreDirs are directory names pruned from the walk.
	IgnoreDirs []string
	// IgnoreFiles are file names to skip; a leading * matches a suffix.
	IgnoreFiles []string
	// ContentExts are the extensions whose contents are inlined.
	ContentExts []string
	// Indent is the per-level indentation string.
	Indent string
	// Now stamps the header; defaults to time.Now.
	Now func() time.Time
}

// DefaultSnapshotOptions returns the ignore sets and extensions suited to a
// transcript archive checkout.
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		IgnoreDirs: []string{
			".git", ".idea", ".vscode", "node_modules", "vendor",
			"__pycache__", ".venv", "venv",
		},
		IgnoreFiles: []string{
			".gitignore", ".env", ".DS_Store", "*.pyc", "*.so", "*.db", "*.mp3",
		},
		ContentExts: []string{
			".go", ".txt", ".md", ".json", ".toml", ".yml", ".yaml", ".ini", ".cfg", ".py",
		},
		Indent: "    ",
		Now:    time.Now,
	}
}

// Snapshot writes an indented outline of root plus the contents of text-like
// files to w. The layout mirrors the archive's transcript files: contents sit
// between 50-character = rules.
func Snapshot(w io.Writer, root string, opts SnapshotOptions) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve snapshot root: %w", err)
	}
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	buffered := bufio.NewWriter(w)
	fmt.Fprintf(buffered, "Project Export - %s\n", filepath.Base(absRoot))
	fmt.Fprintf(buffered, "Generated on: %s\n", now().Format("2006-01-02 15:04:05"))
	buffered.WriteString(snapshotRule + "\n\n")

	if err := snapshotDir(buffered, absRoot, 0, opts); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// SnapshotToFile writes the snapshot of root to outPath, overwriting any
// existing file.
func SnapshotToFile(root, outPath string, opts SnapshotOptions) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	err = Snapshot(out, root, opts)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close snapshot file: %w", closeErr)
	}
	return err
}

func snapshotDir(w *bufio.Writer, dir string, level int, opts SnapshotOptions) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	indent := strings.Repeat(opts.Indent, level)
	if level == 0 {
		w.WriteString("📁 .\n")
	} else {
		fmt.Fprintf(w, "%s📁 %s\n", indent, filepath.Base(dir))
	}

	var files, subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if !matchesAny(entry.Name(), opts.IgnoreDirs) {
				subdirs = append(subdirs, entry.Name())
			}
			continue
		}
		if !matchesAny(entry.Name(), opts.IgnoreFiles) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	sort.Strings(subdirs)

	for _, name := range files {
		fmt.Fprintf(w, "%s%s📄 %s\n", indent, opts.Indent, name)
		if hasExt(name, opts.ContentExts) {
			writeFileContents(w, filepath.Join(dir, name), level+2, opts.Indent)
		}
	}

	for _, name := range subdirs {
		if err := snapshotDir(w, filepath.Join(dir, name), level+1, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeFileContents(w *bufio.Writer, path string, level int, indent string) {
	prefix := strings.Repeat(indent, level)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s[Error reading file: %v]\n\n", prefix, err)
		return
	}

	fmt.Fprintf(w, "%sFile Contents:\n", prefix)
	w.WriteString(prefix + snapshotRule + "\n")
	for line := range strings.Lines(string(data)) {
		w.WriteString(prefix + line)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		w.WriteString("\n")
	}
	w.WriteString(prefix + snapshotRule + "\n\n")
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if name == pattern {
			return true
		}
		if strings.HasPrefix(pattern, "*") && strings.HasSuffix(name, pattern[1:]) {
			return true
		}
	}
	return false
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, candidate := range exts {
		if ext == candidate {
			return true
		}
	}
	return false
}
