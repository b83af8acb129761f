package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const templateExt = ".gt.html"

// template is a view template found next to Go sources.
type template struct {
	Path       string
	Name       string // view name, the file name without .gt.html
	ImportPath string // package the template belongs to, empty outside a module
}

// discoverPackageTemplates loads every package under rootDir and collects the
// *.gt.html files in their directories.
func discoverPackageTemplates(rootDir string) ([]template, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  rootDir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var found []template
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		ts, err := findTemplates(filepath.Dir(pkg.GoFiles[0]))
		if err != nil {
			logf("warning: %v", err)
			continue
		}
		for i := range ts {
			ts[i].ImportPath = pkg.PkgPath
		}
		found = append(found, ts...)
	}
	return found, nil
}

// findTemplates lists the templates directly inside dir, sorted by name.
func findTemplates(dir string) ([]template, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %s: %w", dir, err)
	}
	var found []template
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), templateExt) {
			continue
		}
		found = append(found, template{
			Path: filepath.Join(dir, f.Name()),
			Name: strings.TrimSuffix(f.Name(), templateExt),
		})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}
