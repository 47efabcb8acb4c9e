// Package discover walks a source tree and returns its Java files in a
// deterministic (sorted) order.
package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ignoreDirs are directory names skipped during discovery.
var ignoreDirs = map[string]bool{
	".git": true, ".gradle": true, ".hg": true, ".idea": true,
	".maven": true, ".settings": true, ".svn": true, ".vscode": true,
	"bin": true, "build": true, "dist": true, "generated": true,
	"node_modules": true, "out": true, "target": true, "tmp": true,
}

// FileInfo represents a discovered Java source file.
type FileInfo struct {
	Path    string // absolute path
	RelPath string // relative to the corpus root, slash-separated
}

// Options configures file discovery.
type Options struct {
	// IgnorePatterns are extra glob patterns (matched against directory
	// names and root-relative paths) to skip, merged with the built-ins.
	IgnorePatterns []string
	// IgnoreFile overrides the default <root>/.javagraphignore lookup.
	IgnoreFile string
}

// Discover walks a corpus root and returns all .java files, sorted by
// relative path so that downstream last-write-wins index policies are
// deterministic.
func Discover(ctx context.Context, rootPath string, opts *Options) ([]FileInfo, error) {
	rootPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var extraIgnore []string
	ignoreFile := filepath.Join(rootPath, ".javagraphignore")
	if opts != nil {
		extraIgnore = append(extraIgnore, opts.IgnorePatterns...)
		if opts.IgnoreFile != "" {
			ignoreFile = opts.IgnoreFile
		}
	}
	if patterns, err := loadIgnoreFile(ignoreFile); err == nil {
		extraIgnore = append(extraIgnore, patterns...)
	}

	var files []FileInfo
	err = filepath.Walk(rootPath, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(rootPath, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path != rootPath && shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			files = append(files, FileInfo{Path: path, RelPath: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if ignoreDirs[name] {
		return true
	}
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
