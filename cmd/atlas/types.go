package main

import "codeatlas"

// CLIRoot is the output view of one scanned root.
type CLIRoot struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsPackage bool   `json:"is_package"`
}

// CLIModule is the output view of one discovered module.
type CLIModule struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Path     string `json:"path"`
}

// CLISymbol is the output view of a class or callable.
type CLISymbol struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Signature string `json:"signature,omitempty"`
	Module    string `json:"module"`
	Class     string `json:"class,omitempty"`
}

// CLIFailure is the output view of a skipped file.
type CLIFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// CLIIndex is the full scan output.
type CLIIndex struct {
	Roots     []CLIRoot    `json:"roots"`
	Modules   []CLIModule  `json:"modules"`
	Classes   []CLISymbol  `json:"classes"`
	Callables []CLISymbol  `json:"callables"`
	Failures  []CLIFailure `json:"failures,omitempty"`
}

// newCLIIndex flattens an analysis result into the output view.
func newCLIIndex(res *codeatlas.Result) CLIIndex {
	idx := CLIIndex{
		Roots:     make([]CLIRoot, 0, len(res.RootModules)),
		Modules:   make([]CLIModule, 0, len(res.Modules)),
		Classes:   make([]CLISymbol, 0, len(res.Classes)),
		Callables: make([]CLISymbol, 0, len(res.Methods)),
	}
	for _, r := range res.RootModules {
		idx.Roots = append(idx.Roots, CLIRoot{Name: r.Name, Path: r.Path, IsPackage: r.IsPackage})
	}
	for _, m := range res.Modules {
		idx.Modules = append(idx.Modules, CLIModule{Name: m.Name, FullName: m.FullName, Path: m.Path})
	}
	for _, c := range res.Classes {
		idx.Classes = append(idx.Classes, CLISymbol{
			Name:      c.Name,
			FullName:  c.FullName,
			Signature: c.Signature,
			Module:    c.Module.FullName,
		})
	}
	for _, m := range res.Methods {
		s := CLISymbol{
			Name:      m.Name,
			FullName:  m.FullName,
			Signature: m.Signature,
			Module:    m.Module.FullName,
		}
		if m.Class != nil {
			s.Class = m.Class.FullName
		}
		idx.Callables = append(idx.Callables, s)
	}
	for _, f := range res.Failures {
		idx.Failures = append(idx.Failures, CLIFailure{Path: f.Path, Reason: f.Reason})
	}
	return idx
}
