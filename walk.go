package codeatlas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directories never descended into, regardless of marker presence.
var skipDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"vendor":       true,
}

type walkFrame struct {
	dir string
	pkg string // dotted package name; empty for a non-package root
}

// walkRoot discovers and extracts every module under one root, then applies
// the root's public-surface pass. Qualified names never resolve across
// roots, so the surface pass sees only this root's modules.
func (a *Analyzer) walkRoot(root string) error {
	root = filepath.Clean(root)
	isPkg := fileExists(filepath.Join(root, a.marker))

	rootPkg := RootPackage{
		Name:      filepath.Base(root),
		Path:      root,
		IsPackage: isPkg,
	}
	a.result.RootModules = append(a.result.RootModules, rootPkg)

	basePkg := ""
	if isPkg {
		basePkg = rootPkg.Name
	}

	firstModule := len(a.result.Modules)
	var surfaces []packageSurface

	stack := []walkFrame{{dir: root, pkg: basePkg}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(frame.dir)
		if err != nil {
			if frame.dir == root {
				return fmt.Errorf("read root %s: %w", root, err)
			}
			a.fail(frame.dir, err)
			continue
		}

		// Marker first, so a package's own module precedes its members.
		markerPath := filepath.Join(frame.dir, a.marker)
		if fileExists(markerPath) {
			if mod := a.processModule(markerPath, frame.pkg); mod != nil && mod.HasExports {
				surfaces = append(surfaces, packageSurface{
					fullName:   frame.pkg,
					markerPath: markerPath,
					exports:    mod.Exports,
					imports:    mod.FromImports,
				})
			}
		}

		var subdirs []walkFrame
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if e.IsDir() {
				if skipDirs[name] {
					continue
				}
				// Only package directories are traversed.
				if !fileExists(filepath.Join(frame.dir, name, a.marker)) {
					continue
				}
				subdirs = append(subdirs, walkFrame{
					dir: filepath.Join(frame.dir, name),
					pkg: joinDotted(frame.pkg, name),
				})
				continue
			}
			if name == a.marker || !strings.HasSuffix(name, ".py") {
				continue
			}
			stem := strings.TrimSuffix(name, ".py")
			a.processModule(filepath.Join(frame.dir, name), joinDotted(frame.pkg, stem))
		}

		// Reverse push keeps the traversal in lexical order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	a.applySurface(surfaces, a.result.Modules[firstModule:])
	return nil
}
