package codeatlas

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"codeatlas/internal/pyast"
	"codeatlas/internal/resolve"
	"codeatlas/internal/textenc"
)

// Analyzer walks one or more root directories and builds the atlas index.
// An Analyzer owns all of its state for the duration of one Analyze call,
// so separate instances may run concurrently on disjoint roots with no
// coordination.
type Analyzer struct {
	roots  []string
	marker string
	logger *log.Logger

	result *Result
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMarkerName overrides the package-marker filename
// (default "__init__.py").
func WithMarkerName(name string) Option {
	return func(a *Analyzer) {
		a.marker = name
	}
}

// WithLogger sets the logger used for per-file failure warnings.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates an Analyzer over the given root directories.
func NewAnalyzer(roots []string, opts ...Option) *Analyzer {
	a := &Analyzer{
		roots:  roots,
		marker: resolve.DefaultMarkerName,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze performs one full pass over the configured roots: discovery,
// extraction, and the public-surface rewrite, per root. Result collections
// are rebuilt from scratch on every call; there is no cross-run cache. The
// returned Result belongs to the caller.
//
// Per-file decode and parse failures are recorded in Result.Failures and do
// not abort the walk. An error is returned only when a root itself cannot be
// read.
func (a *Analyzer) Analyze() (*Result, error) {
	a.result = &Result{}
	defer func() { a.result = nil }()

	for _, root := range a.roots {
		if err := a.walkRoot(root); err != nil {
			return nil, err
		}
	}
	return a.result, nil
}

// ModuleName returns the dotted module name for a path under root. The
// naming anchor is root's parent when root itself carries the marker file,
// so the root package contributes its own name segment; otherwise the root
// maps to the empty-string module and its children are top-level names.
func (a *Analyzer) ModuleName(root, path string) string {
	anchor := root
	if fileExists(filepath.Join(root, a.marker)) {
		anchor = filepath.Dir(root)
	}
	rel, err := filepath.Rel(anchor, path)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == a.marker:
		rel = ""
	case strings.HasSuffix(rel, "/"+a.marker):
		rel = strings.TrimSuffix(rel, "/"+a.marker)
	default:
		rel = strings.TrimSuffix(rel, ".py")
	}
	if rel == "" || rel == "." {
		return ""
	}
	return strings.ReplaceAll(rel, "/", ".")
}

// processModule reads, decodes, and parses one source file, appending its
// module, class, and method records. Failures are local: they are logged,
// recorded, and skipped.
func (a *Analyzer) processModule(path, moduleName string) *pyast.Module {
	data, enc, err := textenc.DecodeFile(path)
	if err != nil {
		a.fail(path, err)
		return nil
	}
	mod, err := pyast.Parse(data)
	if err != nil {
		a.fail(path, err)
		return nil
	}
	a.logger.Debug("indexed module", "module", moduleName, "path", path, "encoding", enc)

	mr := &ModuleRecord{
		Name:     lastSegment(moduleName),
		FullName: moduleName,
		Path:     path,
	}
	a.result.Modules = append(a.result.Modules, mr)

	for i := range mod.Classes {
		cls := &mod.Classes[i]
		cr := &ClassRecord{
			Name:      cls.Name,
			FullName:  moduleName + "." + cls.Name,
			Signature: resolve.NormalizeScopeColons(cls.Signature),
			Module:    mr,
		}
		a.result.Classes = append(a.result.Classes, cr)
		for j := range cls.Methods {
			m := &cls.Methods[j]
			a.result.Methods = append(a.result.Methods, &MethodRecord{
				Name:      m.Name,
				FullName:  cr.FullName + "." + m.Name,
				Signature: resolve.NormalizeScopeColons(m.Signature),
				Module:    mr,
				Class:     cr,
			})
		}
	}
	for i := range mod.Functions {
		f := &mod.Functions[i]
		a.result.Methods = append(a.result.Methods, &MethodRecord{
			Name:      f.Name,
			FullName:  moduleName + "." + f.Name,
			Signature: resolve.NormalizeScopeColons(f.Signature),
			Module:    mr,
		})
	}
	return mod
}

func (a *Analyzer) fail(path string, err error) {
	a.logger.Warn("skipping file", "path", path, "reason", err)
	a.result.Failures = append(a.result.Failures, FileFailure{
		Path:   path,
		Reason: err.Error(),
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func lastSegment(dotted string) string {
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

func joinDotted(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}
