// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every HCL file below a directory.
const DefaultInclude = "**/*.hcl"

// FindFiles resolves paths into a sorted, de-duplicated list of files.
// Directories are searched for files matching the doublestar pattern include
// (DefaultInclude when empty); files named explicitly are always kept.
func FindFiles(paths []string, include string) ([]string, error) {
	if include == "" {
		include = DefaultInclude
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("invalid include pattern %q", include)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), include, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", root, err)
		}
		for _, m := range matches {
			add(filepath.Join(root, filepath.FromSlash(m)))
		}
	}

	sort.Strings(files)
	return files, nil
}

// WatchDirs returns the directories a watcher must subscribe to so that it
// sees every change FindFiles(paths, ...) could pick up: each directory path
// with all of its subdirectories, and the parent of each file path. Missing
// paths are skipped.
func WatchDirs(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(d string) {
		d = filepath.Clean(d)
		if _, dup := seen[d]; dup {
			return
		}
		seen[d] = struct{}{}
		dirs = append(dirs, d)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// Matches reports whether name is a file FindFiles(paths, include) would
// return, judged by its path alone.
func Matches(paths []string, include, name string) bool {
	if include == "" {
		include = DefaultInclude
	}
	name = filepath.Clean(name)
	for _, root := range paths {
		root = filepath.Clean(root)
		if name == root {
			return true
		}
		rel, err := filepath.Rel(root, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if ok, _ := doublestar.Match(include, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}
