package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScannedFile is a markdown post source found under the content root.
type ScannedFile struct {
	RelPath string // slash separated, relative to the content root (e.g. "2025/hello.md")
	AbsPath string
}

// Scanner finds markdown files under a content directory.
type Scanner struct {
	root string
}

// NewScanner creates a Scanner rooted at dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{root: dir}
}

// Root returns the content directory.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the content root and returns every .md file in lexical order.
// Directories whose name starts with a dot are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		files = append(files, ScannedFile{
			RelPath: filepath.ToSlash(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan %s: %w", s.root, err)
	}
	return files, nil
}
