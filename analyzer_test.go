package codeatlas

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func moduleNames(res *Result) []string {
	out := make([]string, len(res.Modules))
	for i, m := range res.Modules {
		out[i] = m.FullName
	}
	return out
}

func classByName(t *testing.T, res *Result, name string) *ClassRecord {
	t.Helper()
	for _, c := range res.Classes {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("class %q not found", name)
	return nil
}

func methodByName(t *testing.T, res *Result, name string) *MethodRecord {
	t.Helper()
	for _, m := range res.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("method %q not found", name)
	return nil
}

func TestAnalyze_SingleModule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"widget.py": `
class Widget(Base):
    def draw(self, surface) -> None:
        pass

def make_widget(kind="plain"):
    return Widget()
`,
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)

	require.Len(t, res.RootModules, 1)
	assert.False(t, res.RootModules[0].IsPackage)
	assert.Equal(t, root, res.RootModules[0].Path)

	require.Len(t, res.Modules, 1)
	assert.Equal(t, "widget", res.Modules[0].FullName)
	assert.Equal(t, filepath.Join(root, "widget.py"), res.Modules[0].Path)

	cls := classByName(t, res, "Widget")
	assert.Equal(t, "widget.Widget", cls.FullName)
	assert.Equal(t, "Widget(Base)", cls.Signature)
	assert.Same(t, res.Modules[0], cls.Module)

	draw := methodByName(t, res, "draw")
	assert.Equal(t, "widget.Widget.draw", draw.FullName)
	assert.Equal(t, "draw(self, surface) -> None", draw.Signature)
	assert.Same(t, cls, draw.Class)

	free := methodByName(t, res, "make_widget")
	assert.Equal(t, "widget.make_widget", free.FullName)
	assert.Nil(t, free.Class)
}

func TestAnalyze_PackageRootNaming(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "mypkg")
	writeTree(t, root, map[string]string{
		"__init__.py":     "",
		"zmod.py":         "def z():\n    pass\n",
		"sub/__init__.py": "",
		"sub/impl.py":     "class Impl:\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)

	require.Len(t, res.RootModules, 1)
	assert.True(t, res.RootModules[0].IsPackage)
	assert.Equal(t, "mypkg", res.RootModules[0].Name)

	// Marker first, then files, then subpackages, all in lexical order.
	assert.Equal(t, []string{
		"mypkg",
		"mypkg.zmod",
		"mypkg.sub",
		"mypkg.sub.impl",
	}, moduleNames(res))

	assert.Equal(t, "mypkg.sub.impl.Impl", classByName(t, res, "Impl").FullName)
}

func TestAnalyze_PublicSurface(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "pkg")
	writeTree(t, root, map[string]string{
		"__init__.py": `
__all__ = ["Widget", "make"]

from .impl import Widget, build as make
`,
		"impl.py": `
class Widget:
    def draw(self):
        pass

def build():
    return Widget()

def helper():
    pass
`,
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)

	// Exported symbols carry the package name under the exported alias.
	assert.Equal(t, "pkg.Widget", classByName(t, res, "Widget").FullName)
	assert.Equal(t, "pkg.make", methodByName(t, res, "build").FullName)

	// Unlisted symbols keep their defining-module names, and so do methods
	// of re-exported classes.
	assert.Equal(t, "pkg.impl.helper", methodByName(t, res, "helper").FullName)
	assert.Equal(t, "pkg.impl.Widget.draw", methodByName(t, res, "draw").FullName)
}

func TestAnalyze_WildcardReexport(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "pkg")
	writeTree(t, root, map[string]string{
		"__init__.py": `
__all__ = ["Widget"]

from .impl import *
`,
		"impl.py": "class Widget:\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)
	assert.Equal(t, "pkg.Widget", classByName(t, res, "Widget").FullName)
}

func TestAnalyze_SubpackageSurface(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "pkg")
	writeTree(t, root, map[string]string{
		"__init__.py": "",
		"sub/__init__.py": `
__all__ = ["Thing"]

from .deep import Thing
`,
		"sub/deep/__init__.py": "class Thing:\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)
	assert.Equal(t, "pkg.sub.Thing", classByName(t, res, "Thing").FullName)
}

func TestAnalyze_ParseFailureContinues(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"broken.py": "def broken(:\n",
		"good.py":   "def fine():\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}, WithLogger(quietLogger())).Analyze()
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, filepath.Join(root, "broken.py"), res.Failures[0].Path)
	assert.Contains(t, res.Failures[0].Reason, "syntax error")

	assert.Equal(t, []string{"good"}, moduleNames(res))
}

func TestAnalyze_SkipsNonPackageAndHiddenDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.py":                 "def t():\n    pass\n",
		"plain/loose.py":         "def invisible():\n    pass\n",
		"__pycache__/cached.py":  "def invisible():\n    pass\n",
		".hidden/secret.py":      "def invisible():\n    pass\n",
		"vendor/__init__.py":     "",
		"vendor/third.py":        "def invisible():\n    pass\n",
		"real/__init__.py":       "",
		"real/mod.py":            "def visible():\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "real", "real.mod"}, moduleNames(res))
}

func TestAnalyze_MultipleRoots(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	rootA := filepath.Join(tmp, "alpha")
	rootB := filepath.Join(tmp, "beta")
	writeTree(t, rootA, map[string]string{
		"__init__.py": "",
		"mod.py":      "class A:\n    pass\n",
	})
	writeTree(t, rootB, map[string]string{
		"__init__.py": "",
		"mod.py":      "class B:\n    pass\n",
	})

	res, err := NewAnalyzer([]string{rootA, rootB}).Analyze()
	require.NoError(t, err)

	require.Len(t, res.RootModules, 2)
	assert.Equal(t, "alpha", res.RootModules[0].Name)
	assert.Equal(t, "beta", res.RootModules[1].Name)
	assert.Equal(t, []string{"alpha", "alpha.mod", "beta", "beta.mod"}, moduleNames(res))
}

func TestAnalyze_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewAnalyzer([]string{filepath.Join(t.TempDir(), "nope")}).Analyze()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read root")
}

func TestAnalyze_CustomMarker(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "pkg")
	writeTree(t, root, map[string]string{
		"__pkg__.py":     "",
		"__init__.py":    "def regular():\n    pass\n",
		"sub/__pkg__.py": "",
		"sub/mod.py":     "def inner():\n    pass\n",
	})

	res, err := NewAnalyzer([]string{root}, WithMarkerName("__pkg__.py")).Analyze()
	require.NoError(t, err)

	// The default marker name is just another module now.
	assert.Equal(t, []string{
		"pkg",
		"pkg.__init__",
		"pkg.sub",
		"pkg.sub.mod",
	}, moduleNames(res))
}

func TestModuleName(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	pkgRoot := filepath.Join(tmp, "mypkg")
	writeTree(t, pkgRoot, map[string]string{"__init__.py": ""})
	plainRoot := filepath.Join(tmp, "src")
	require.NoError(t, os.MkdirAll(plainRoot, 0o755))

	a := NewAnalyzer(nil)

	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{"package root marker", pkgRoot, filepath.Join(pkgRoot, "__init__.py"), "mypkg"},
		{"package root file", pkgRoot, filepath.Join(pkgRoot, "mod.py"), "mypkg.mod"},
		{"package root nested", pkgRoot, filepath.Join(pkgRoot, "a", "b.py"), "mypkg.a.b"},
		{"package root nested marker", pkgRoot, filepath.Join(pkgRoot, "a", "__init__.py"), "mypkg.a"},
		{"plain root file", plainRoot, filepath.Join(plainRoot, "mod.py"), "mod"},
		{"plain root nested", plainRoot, filepath.Join(plainRoot, "a", "b.py"), "a.b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.ModuleName(tc.root, tc.path))
		})
	}
}

func TestAnalyze_SignatureColonNormalization(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"mod.py": `
def convert(v: "core::Vec") -> "core::Mat":
    pass
`,
	})

	res, err := NewAnalyzer([]string{root}).Analyze()
	require.NoError(t, err)
	assert.Equal(t, `convert(v: "core.Vec") -> "core.Mat"`,
		methodByName(t, res, "convert").Signature)
}
