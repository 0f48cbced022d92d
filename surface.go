package codeatlas

import (
	"path/filepath"

	"codeatlas/internal/pyast"
	"codeatlas/internal/resolve"
)

// packageSurface captures the declared public surface of one package: the
// export list and from-imports of its marker file.
type packageSurface struct {
	fullName   string
	markerPath string
	exports    []string
	imports    []pyast.FromImport
}

// applySurface requalifies re-exported symbols under their exporting
// package's name. modules holds the records discovered under one root; a
// name declared in a package's export list is matched against the imports of
// that package's marker file, and the defining class or free function gets
// its FullName rewritten to the exporting package's name plus the exported
// name. Symbols defined directly in the marker file already carry the
// package name and stay untouched, as do methods of re-exported classes.
func (a *Analyzer) applySurface(surfaces []packageSurface, modules []*ModuleRecord) {
	if len(surfaces) == 0 {
		return
	}

	byFull := make(map[string]*ModuleRecord, len(modules))
	inRoot := make(map[*ModuleRecord]bool, len(modules))
	for _, m := range modules {
		byFull[m.FullName] = m
		inRoot[m] = true
	}

	classes := make(map[*ModuleRecord]map[string]*ClassRecord)
	for _, c := range a.result.Classes {
		if !inRoot[c.Module] {
			continue
		}
		mm := classes[c.Module]
		if mm == nil {
			mm = make(map[string]*ClassRecord)
			classes[c.Module] = mm
		}
		mm[c.Name] = c
	}
	funcs := make(map[*ModuleRecord]map[string]*MethodRecord)
	for _, f := range a.result.Methods {
		if f.Class != nil || !inRoot[f.Module] {
			continue
		}
		mm := funcs[f.Module]
		if mm == nil {
			mm = make(map[string]*MethodRecord)
			funcs[f.Module] = mm
		}
		mm[f.Name] = f
	}

	for _, pkg := range surfaces {
		for _, exported := range pkg.exports {
			src, orig := pkg.binding(exported, byFull, classes, funcs)
			if src == nil {
				continue
			}
			full := pkg.fullName + "." + exported
			if c, ok := classes[src][orig]; ok {
				c.FullName = full
				continue
			}
			if f, ok := funcs[src][orig]; ok {
				f.FullName = full
			}
		}
	}
}

// binding finds which from-import of the marker file provides the exported
// name, returning the defining module and the symbol's original name there.
// Explicit names win over wildcard imports; an export with no resolvable
// binding (a locally defined symbol, a re-exported submodule, an external
// package) yields nil.
func (pkg packageSurface) binding(
	exported string,
	byFull map[string]*ModuleRecord,
	classes map[*ModuleRecord]map[string]*ClassRecord,
	funcs map[*ModuleRecord]map[string]*MethodRecord,
) (*ModuleRecord, string) {
	for _, fi := range pkg.imports {
		src := pkg.importedModule(fi.Module, byFull)
		if src == nil {
			continue
		}
		for _, name := range fi.Names {
			if name.Local() == exported {
				return src, name.Name
			}
		}
	}
	for _, fi := range pkg.imports {
		if !fi.Wildcard {
			continue
		}
		src := pkg.importedModule(fi.Module, byFull)
		if src == nil {
			continue
		}
		if _, ok := classes[src][exported]; ok {
			return src, exported
		}
		if _, ok := funcs[src][exported]; ok {
			return src, exported
		}
	}
	return nil, ""
}

// importedModule resolves a from-import reference to a module discovered
// under the same root. The name and the path must agree: the resolved marker
// path, or its plain-file sibling form (pkg/mod.py rather than
// pkg/mod/__init__.py), has to match where the module was actually found.
func (pkg packageSurface) importedModule(ref string, byFull map[string]*ModuleRecord) *ModuleRecord {
	full := resolve.QualifiedName(ref, pkg.fullName, true)
	m := byFull[full]
	if m == nil {
		return nil
	}
	want := resolve.MarkerPath(ref, pkg.markerPath, true)
	if m.Path == want || m.Path == filepath.Dir(want)+".py" {
		return m
	}
	return nil
}
