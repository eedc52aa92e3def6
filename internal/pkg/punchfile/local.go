package punchfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalSource reads punch files from a directory on the local filesystem.
type LocalSource struct{}

func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// ListFiles returns up to limit parseable files (.json, .csv) from dir,
// sorted by name so repeated imports see a stable order. Subdirectories
// and other extensions are skipped.
func (s *LocalSource) ListFiles(ctx context.Context, dir string, limit int) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".csv" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read punch file %s: %w", name, err)
		}
		files = append(files, File{Name: name, Data: data})
	}

	return files, nil
}
