package main

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// collectPaths expands paths into the list of files to parse.
//
// Files named directly are kept regardless of extension. Directories are
// walked recursively: entries whose name starts with a dot are skipped
// (whole subtrees for directories) and files are kept when their extension
// is in exts. Walk errors are passed to onErr and the walk continues.
func collectPaths(paths []string, exts map[string]struct{}, onErr func(path string, err error)) []string {
	var out []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				onErr(path, err)
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}

			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			switch {
			case d.IsDir():
				return nil
			case path == root:
				out = append(out, path)
			case d.Type().IsRegular() && hasExtension(path, exts):
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			onErr(root, err)
		}
	}
	return out
}

func hasExtension(path string, exts map[string]struct{}) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	_, ok := exts[strings.ToLower(ext)]
	return ok
}
