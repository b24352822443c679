package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/killallgit/qagen/pkg/logger"
)

// templateExtensions lists the file extensions LoadDir picks up.
var templateExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".txt":  true,
	".tmpl": true,
}

// FileLoader loads templates from files
type FileLoader struct {
	baseDir string
}

// NewFileLoader creates a new file-based template loader
func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{baseDir: baseDir}
}

// Load loads a template by file name relative to the base directory, or by
// absolute path.
func (f *FileLoader) Load(name string) (Template, error) {
	spec, err := f.LoadSpec(name)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

// LoadSpec reads and decodes a template file without building it.
func (f *FileLoader) LoadSpec(name string) (*TemplateSpec, error) {
	path := f.resolvePath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	return parseTemplateFile(data, path)
}

// Files returns the template files in the base directory, sorted by name.
func (f *FileLoader) Files() ([]string, error) {
	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}
	return templateFiles(entries), nil
}

// resolvePath resolves the template path
func (f *FileLoader) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.baseDir, name)
}

// EmbedLoader loads templates from an embedded or otherwise read-only
// filesystem
type EmbedLoader struct {
	fs     fs.FS
	prefix string
}

// NewEmbedLoader creates a new embedded template loader
func NewEmbedLoader(fsys fs.FS, prefix string) *EmbedLoader {
	return &EmbedLoader{
		fs:     fsys,
		prefix: prefix,
	}
}

// Load loads a template from the filesystem
func (e *EmbedLoader) Load(name string) (Template, error) {
	spec, err := e.LoadSpec(name)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

// LoadSpec reads and decodes a template file without building it.
func (e *EmbedLoader) LoadSpec(name string) (*TemplateSpec, error) {
	// fs.FS paths always use forward slashes
	p := path.Join(e.prefix, name)

	data, err := fs.ReadFile(e.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, p)
		}
		return nil, fmt.Errorf("failed to read embedded template: %w", err)
	}

	return parseTemplateFile(data, p)
}

// Files returns the template files under the prefix, sorted by name.
func (e *EmbedLoader) Files() ([]string, error) {
	dir := e.prefix
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(e.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded template directory: %w", err)
	}
	return templateFiles(entries), nil
}

// DirLoader is a Loader that can also enumerate its template files.
type DirLoader interface {
	Loader
	LoadSpec(name string) (*TemplateSpec, error)
	Files() ([]string, error)
}

// LoadDir builds every template file the loader exposes and registers it
// under its spec name. It returns the registered names in file order.
func LoadDir(loader DirLoader, reg Registry) ([]string, error) {
	files, err := loader.Files()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		spec, err := loader.LoadSpec(file)
		if err != nil {
			return names, err
		}

		template, err := spec.Build()
		if err != nil {
			return names, fmt.Errorf("failed to build %s: %w", file, err)
		}

		if err := reg.Register(spec.Name, template); err != nil {
			return names, err
		}
		names = append(names, spec.Name)
	}

	logger.Info("Loaded %d prompt templates", len(names))
	return names, nil
}

// QuickTemplate creates a simple f-string template from a string, inferring
// its input variables
func QuickTemplate(template string) Template {
	return NewPromptTemplate(template, Placeholders(template, TemplateFormatDefault))
}

func templateFiles(entries []fs.DirEntry) []string {
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if templateExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}
	return files
}
