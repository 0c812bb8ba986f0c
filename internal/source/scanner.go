package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FormatOf infers the import format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// ScanDir walks dir and returns every CSV and JSON file beneath it, sorted by path.
// A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if f, ok := FormatOf(dir); ok {
			return []DiscoveredFile{{Path: dir, Format: f}}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if f, ok := FormatOf(path); ok {
			files = append(files, DiscoveredFile{Path: path, Format: f})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// Discover resolves command-line arguments (files or directories) to import files.
func Discover(paths []string) ([]DiscoveredFile, error) {
	var out []DiscoveredFile
	seen := make(map[string]struct{})
	for _, p := range paths {
		found, err := ScanDir(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, dup := seen[f.Path]; dup {
				continue
			}
			seen[f.Path] = struct{}{}
			out = append(out, f)
		}
	}
	return out, nil
}
