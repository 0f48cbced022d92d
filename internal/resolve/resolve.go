// Package resolve converts dotted and leading-dot relative module references
// into canonical qualified names and package-marker file paths. All functions
// are pure and total: malformed or excessive references degrade to a
// best-effort result instead of failing.
package resolve

import (
	"path/filepath"
	"strings"
)

// DefaultMarkerName is the package-marker filename for the supported grammar.
const DefaultMarkerName = "__init__.py"

// QualifiedName converts a module reference into a canonical dotted name.
//
// A reference is either a plain dotted path ("a.b.c") or prefixed with one or
// more dots denoting a relative reference. currentPkg is the dotted qualified
// name of the context the reference appears in. alreadyAbsolute signals that
// currentPkg already names a package boundary rather than a module inside
// one: a dot-free reference is then returned verbatim, and a relative
// reference ascends one level less because the first dot lands on currentPkg
// itself.
//
// Excess leading dots yield an empty base, never an error.
func QualifiedName(ref, currentPkg string, alreadyAbsolute bool) string {
	n := leadingDots(ref)
	tail := ref[n:]

	if n == 0 {
		if alreadyAbsolute || currentPkg == "" {
			return ref
		}
		return currentPkg + "." + ref
	}

	drop := n
	if alreadyAbsolute {
		drop = n - 1
	}
	base := dropLast(currentPkg, drop)
	switch {
	case base == "":
		return tail
	case tail == "":
		return base
	}
	return base + "." + tail
}

// MarkerPath converts a module reference into the filesystem path of the
// referenced package's marker file. currentMarkerPath is the marker file of
// the package the reference appears in.
//
// With no leading dots and alreadyAbsolute set, the reference resolves as a
// sibling of the enclosing package (one extra ascent). With leading dots, the
// first dot names the package's own directory and each further dot ascends
// once. Every dot-separated segment of the remaining reference becomes one
// nested directory component — including literal suffix tokens that look like
// file extensions, which stack into further directories. The marker filename
// is appended last.
func MarkerPath(ref, currentMarkerPath string, alreadyAbsolute bool) string {
	marker := filepath.Base(currentMarkerPath)
	dir := filepath.Dir(currentMarkerPath)

	n := leadingDots(ref)
	tail := ref[n:]

	if n == 0 {
		if alreadyAbsolute {
			dir = filepath.Dir(dir)
		}
	} else {
		for i := 1; i < n; i++ {
			dir = filepath.Dir(dir)
		}
	}

	if tail != "" {
		for _, seg := range strings.Split(tail, ".") {
			dir = filepath.Join(dir, seg)
		}
	}
	return filepath.Join(dir, marker)
}

func leadingDots(s string) int {
	n := 0
	for n < len(s) && s[n] == '.' {
		n++
	}
	return n
}

// dropLast removes the trailing drop components of a dotted name. Dropping
// more components than exist yields the empty string.
func dropLast(dotted string, drop int) string {
	if drop <= 0 {
		return dotted
	}
	parts := strings.Split(dotted, ".")
	if drop >= len(parts) {
		return ""
	}
	return strings.Join(parts[:len(parts)-drop], ".")
}
