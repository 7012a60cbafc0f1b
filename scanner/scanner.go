package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{".git", "build", "target", "node_modules"}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
	excludes   map[string]bool
}

func New(rootDir string, extensions ...string) *Scanner {
	s := &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
	s.Exclude(DefaultExcludes...)
	return s
}

// Exclude adds directory names to skip. The root itself is always scanned.
func (s *Scanner) Exclude(names ...string) *Scanner {
	if s.excludes == nil {
		s.excludes = make(map[string]bool, len(names))
	}
	for _, name := range names {
		s.excludes[name] = true
	}
	return s
}

// Scan walks the root and returns the matching files sorted by path. A root
// that is a file is returned as is when it matches.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && s.excludes[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isTargetFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path: path,
			Size: info.Size(),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
