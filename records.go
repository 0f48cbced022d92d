package codeatlas

// ModuleRecord describes one discovered module: a package boundary file or a
// standalone source file.
type ModuleRecord struct {
	// Name is the package-relative simple segment ("impl").
	Name string
	// FullName is the dotted path from the module's root ("pkg.impl").
	FullName string
	// Path is the defining source file location.
	Path string
}

// ClassRecord describes a top-level class definition.
type ClassRecord struct {
	Name string
	// FullName is the defining module's FullName plus the class name, or —
	// when the class is re-exported through a package's declared public
	// surface — the re-exporting package's FullName plus the exported name.
	FullName  string
	Signature string
	Module    *ModuleRecord
}

// MethodRecord describes a callable: a free function (Class is nil) or a
// method of a top-level class. The qualification rule matches ClassRecord.
type MethodRecord struct {
	Name      string
	FullName  string
	Signature string
	Module    *ModuleRecord
	Class     *ClassRecord
}

// RootPackage identifies one independently analyzed root directory.
// Qualified names are never resolved across root boundaries.
type RootPackage struct {
	Name string
	Path string
	// IsPackage reports whether the root directory itself carries the
	// package-marker file and therefore contributes its own name segment.
	IsPackage bool
}

// FileFailure records a localized per-file decode or parse failure. The walk
// continues past it; no records are emitted for the failed file.
type FileFailure struct {
	Path   string
	Reason string
}

// Result holds the ordered collections built by one Analyze pass. The
// collections are append-only during the pass and rebuilt from scratch on
// each invocation; ownership transfers to the caller when Analyze returns,
// and no record is mutated afterwards.
type Result struct {
	Modules     []*ModuleRecord
	Classes     []*ClassRecord
	Methods     []*MethodRecord
	RootModules []RootPackage
	Failures    []FileFailure
}
