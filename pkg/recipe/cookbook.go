package recipe

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NVIDIA/cookbook/pkg/errors"
)

// DefaultMaxFileSize caps reads from a cookbook (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// Cookbook abstracts access to a tree of recipe directories. Paths are
// slash-separated and relative to the cookbook root.
type Cookbook interface {
	// ReadFile returns the contents of the file at the given path.
	ReadFile(path string) ([]byte, error)

	// WalkDir walks the tree rooted at root, calling fn for each file
	// or directory. Paths passed to fn are relative to the cookbook
	// root.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Source describes where the cookbook content comes from, for
	// logging and error context.
	Source() string
}

// DirCookbook serves recipes from a directory on disk.
type DirCookbook struct {
	dir         string
	maxFileSize int64
}

// DirOption customizes a DirCookbook.
type DirOption func(*DirCookbook)

// WithMaxFileSize overrides the per-file read cap.
func WithMaxFileSize(n int64) DirOption {
	return func(c *DirCookbook) {
		if n > 0 {
			c.maxFileSize = n
		}
	}
}

// OpenDir opens a cookbook rooted at dir.
func OpenDir(dir string, opts ...DirOption) (*DirCookbook, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "cookbook directory is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to resolve cookbook directory %q", dir), err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
			"cookbook directory does not exist", err,
			map[string]any{"dir": abs})
	}
	if !info.IsDir() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"cookbook path is not a directory",
			map[string]any{"dir": abs})
	}
	c := &DirCookbook{dir: abs, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ReadFile reads a file relative to the cookbook root. Paths that
// escape the root, symlinks, and files over the size cap are rejected.
func (c *DirCookbook) ReadFile(relPath string) ([]byte, error) {
	if err := validateRelPath(relPath); err != nil {
		return nil, err
	}
	full := filepath.Join(c.dir, filepath.FromSlash(relPath))

	info, err := os.Lstat(full)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"cookbook does not follow symlinks",
			map[string]any{"path": relPath})
	}
	if info.Size() > c.maxFileSize {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("file exceeds maximum size of %d bytes", c.maxFileSize),
			map[string]any{"path": relPath, "size": info.Size()})
	}
	return os.ReadFile(full)
}

// WalkDir walks the cookbook tree below root. fn receives
// slash-separated paths relative to the cookbook root.
func (c *DirCookbook) WalkDir(root string, fn fs.WalkDirFunc) error {
	if root != "." && root != "" {
		if err := validateRelPath(root); err != nil {
			return err
		}
	}
	full := filepath.Join(c.dir, filepath.FromSlash(root))
	return filepath.WalkDir(full, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fn(p, d, err)
		}
		rel, rerr := filepath.Rel(c.dir, p)
		if rerr != nil {
			return rerr
		}
		return fn(filepath.ToSlash(rel), d, nil)
	})
}

// Source returns the root directory path.
func (c *DirCookbook) Source() string {
	return c.dir
}

// FSCookbook serves recipes from an fs.FS, typically an embed.FS or a
// test fixture.
type FSCookbook struct {
	fsys   fs.FS
	source string
}

// NewFSCookbook wraps an fs.FS as a cookbook. source is a free-form
// label used in logs.
func NewFSCookbook(fsys fs.FS, source string) *FSCookbook {
	if source == "" {
		source = "fs"
	}
	return &FSCookbook{fsys: fsys, source: source}
}

func (c *FSCookbook) ReadFile(relPath string) ([]byte, error) {
	if err := validateRelPath(relPath); err != nil {
		return nil, err
	}
	return fs.ReadFile(c.fsys, relPath)
}

func (c *FSCookbook) WalkDir(root string, fn fs.WalkDirFunc) error {
	if root == "" {
		root = "."
	}
	return fs.WalkDir(c.fsys, root, fn)
}

func (c *FSCookbook) Source() string {
	return c.source
}

// Names lists the recipes a cookbook contains, sorted. A recipe is any
// directory holding a recipe.yaml.
func Names(c Cookbook) ([]string, error) {
	var names []string
	err := c.WalkDir(".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != DefinitionFileName {
			return nil
		}
		name := path.Dir(p)
		if name == "." {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to walk cookbook", err,
			map[string]any{"source": c.Source()})
	}
	sort.Strings(names)
	return names, nil
}

func validateRelPath(p string) error {
	if p == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "path is empty")
	}
	if strings.Contains(p, "..") {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("path %q attempts directory traversal", p))
	}
	if path.IsAbs(p) || strings.Contains(p, "\\") {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("path %q must be relative with forward slashes", p))
	}
	return nil
}
