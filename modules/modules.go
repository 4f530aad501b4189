// Package modules implements project manifests and the file-backed importer:
// it resolves an import name through the manifest, parses and type-checks the
// target file, and hands its global name table back to the checker.
package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/ymzk/bluescript/checker"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/syntax"
)

// ManifestFileName is the name of the project manifest file.
const ManifestFileName = "bsconfig.toml"

// tomlManifest represents a BlueScript project as it is encoded in TOML.
type tomlManifest struct {
	Name    string            `toml:"name"`
	Main    string            `toml:"main"`
	Modules map[string]string `toml:"modules"`
}

// Manifest is a loaded project manifest.
type Manifest struct {
	// The project name.
	Name string

	// The entry source file, relative to the project root.
	Main string

	// A mapping from import names to source paths relative to the project
	// root.
	Modules map[string]string

	// The absolute path of the project root: the directory enclosing the
	// manifest file.
	Root string
}

// LoadManifest loads and validates a project manifest.  The path may name the
// manifest file itself or the project directory containing it.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open project at `%s`: %s", path, err.Error())
	}

	manifestPath := path
	if info.IsDir() {
		manifestPath = filepath.Join(path, ManifestFileName)
	}

	buff, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open project file at `%s`: %s", manifestPath, err.Error())
	}

	tomlMan := &tomlManifest{}
	if err := toml.Unmarshal(buff, tomlMan); err != nil {
		return nil, fmt.Errorf("error parsing project file at `%s`: %s", manifestPath, err.Error())
	}

	if tomlMan.Name == "" {
		return nil, fmt.Errorf("project file at `%s` is missing a project name", manifestPath)
	}

	root, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Name:    tomlMan.Name,
		Main:    tomlMan.Main,
		Modules: tomlMan.Modules,
		Root:    root,
	}, nil
}

// -----------------------------------------------------------------------------

// Resolver resolves import names to checked global name tables.  A module
// that checks without errors is cached and not parsed or checked again; a
// module that fails is not cached.  Cycles are rejected.
type Resolver struct {
	manifest *Manifest

	// Fully checked modules by import name.
	cache map[string]*names.NameTable

	// Modules currently being checked, for cycle detection.
	loading map[string]bool
}

// NewResolver creates a resolver over the given manifest.
func NewResolver(manifest *Manifest) *Resolver {
	return &Resolver{
		manifest: manifest,
		cache:    make(map[string]*names.NameTable),
		loading:  make(map[string]bool),
	}
}

// Import resolves an import name.  It satisfies checker.Importer: a returned
// *report.ErrorLog carries the imported file's own diagnostics, any other
// error describes why the module could not be loaded.
func (r *Resolver) Import(name string) (*names.NameTable, error) {
	if table, ok := r.cache[name]; ok {
		return table, nil
	}

	if r.loading[name] {
		return nil, fmt.Errorf("import cycle through '%s'", name)
	}

	relPath, ok := r.manifest.Modules[name]
	if !ok {
		return nil, fmt.Errorf("unknown module: '%s'", name)
	}

	src, err := os.ReadFile(filepath.Join(r.manifest.Root, relPath))
	if err != nil {
		return nil, fmt.Errorf("unable to open module '%s': %s", name, err.Error())
	}

	prog, err := syntax.Parse(string(src))
	if err != nil {
		return nil, diagnosticLog(err)
	}

	r.loading[name] = true
	global := names.NewGlobalTable(nil)
	_, err = checker.TypeCheck(prog, global, r.Import)
	delete(r.loading, name)

	if err != nil {
		return nil, err
	}

	r.cache[name] = global
	return global, nil
}

// diagnosticLog wraps a single parse diagnostic into an error log so the
// importing file absorbs it with file context.
func diagnosticLog(err error) *report.ErrorLog {
	log := report.NewErrorLog()

	switch v := err.(type) {
	case *report.Diagnostic:
		log.Diags = append(log.Diags, v)
	case *syntax.IncompleteError:
		log.Diags = append(log.Diags, v.Diag)
	default:
		log.Push(nil, "%s", err.Error())
	}

	return log
}
