// Package pyast parses Python source with tree-sitter into a small concrete
// syntax tree: just the tagged node kinds the analyzer visits (module,
// class definition, function definition, imports, export list).
package pyast

// Module is the root of the concrete tree for one source file.
type Module struct {
	Classes     []ClassDef
	Functions   []FuncDef
	Imports     []Import
	FromImports []FromImport

	// Exports holds the names declared in a top-level __all__ list.
	// HasExports distinguishes an empty list from no declaration.
	Exports    []string
	HasExports bool
}

// ClassDef is a top-level class definition and its directly nested methods.
type ClassDef struct {
	Name      string
	Line      int
	Signature string
	Methods   []FuncDef
}

// FuncDef is a function definition: a top-level callable or a class method.
type FuncDef struct {
	Name      string
	Line      int
	Signature string
}

// Import is a plain import: "import a.b" or "import a.b as c".
type Import struct {
	Module string
	Alias  string
}

// FromImport is a from-import: "from .a import X as Y, Z". Module keeps its
// leading dots so the reference resolver sees the relative form verbatim.
type FromImport struct {
	Module   string
	Names    []ImportedName
	Wildcard bool
}

// ImportedName is one name bound by a from-import.
type ImportedName struct {
	Name  string
	Alias string
}

// Local returns the name the import binds in the importing scope.
func (n ImportedName) Local() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}
