package pyast

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax marks a file whose parse tree contains errors. Callers record it
// as a local failure and continue; it never aborts a walk.
var ErrSyntax = errors.New("syntax error")

var whitespaceRe = regexp.MustCompile(`\s+`)

// Parse builds the concrete tree for one source file. The source must be
// UTF-8; decode first. A tree containing ERROR nodes yields ErrSyntax and no
// partial Module.
func Parse(source []byte) (*Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w at line %d", ErrSyntax, firstErrorLine(root))
	}

	m := &Module{}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		m.visitTop(root.NamedChild(i), source)
	}
	return m, nil
}

func (m *Module) visitTop(n *sitter.Node, src []byte) {
	switch n.Type() {
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			m.visitTop(def, src)
		}
	case "class_definition":
		m.Classes = append(m.Classes, newClassDef(n, src))
	case "function_definition":
		m.Functions = append(m.Functions, newFuncDef(n, src))
	case "import_statement":
		m.Imports = append(m.Imports, parsePlainImports(n, src)...)
	case "import_from_statement":
		m.FromImports = append(m.FromImports, parseFromImport(n, src))
	case "expression_statement":
		m.maybeExportList(n, src)
	}
}

func newClassDef(n *sitter.Node, src []byte) ClassDef {
	c := ClassDef{
		Name: fieldText(n, "name", src),
		Line: line(n),
	}
	c.Signature = c.Name
	if bases := n.ChildByFieldName("superclasses"); bases != nil {
		c.Signature += collapseWhitespace(bases.Content(src))
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return c
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "decorated_definition" {
			child = child.ChildByFieldName("definition")
			if child == nil {
				continue
			}
		}
		if child.Type() == "function_definition" {
			c.Methods = append(c.Methods, newFuncDef(child, src))
		}
	}
	return c
}

func newFuncDef(n *sitter.Node, src []byte) FuncDef {
	f := FuncDef{
		Name: fieldText(n, "name", src),
		Line: line(n),
	}
	f.Signature = f.Name + collapseWhitespace(fieldText(n, "parameters", src))
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		f.Signature += " -> " + collapseWhitespace(ret.Content(src))
	}
	return f
}

func parsePlainImports(n *sitter.Node, src []byte) []Import {
	var out []Import
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "dotted_name":
			out = append(out, Import{Module: c.Content(src)})
		case "aliased_import":
			out = append(out, Import{
				Module: fieldText(c, "name", src),
				Alias:  fieldText(c, "alias", src),
			})
		}
	}
	return out
}

func parseFromImport(n *sitter.Node, src []byte) FromImport {
	fi := FromImport{}
	mod := n.ChildByFieldName("module_name")
	if mod != nil {
		fi.Module = mod.Content(src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if mod != nil && c.StartByte() == mod.StartByte() {
			continue // the module reference itself, not an imported name
		}
		switch c.Type() {
		case "dotted_name":
			fi.Names = append(fi.Names, ImportedName{Name: c.Content(src)})
		case "aliased_import":
			fi.Names = append(fi.Names, ImportedName{
				Name:  fieldText(c, "name", src),
				Alias: fieldText(c, "alias", src),
			})
		case "wildcard_import":
			fi.Wildcard = true
		}
	}
	return fi
}

// maybeExportList records names from a top-level `__all__ = [...]` assignment.
func (m *Module) maybeExportList(n *sitter.Node, src []byte) {
	if n.NamedChildCount() == 0 {
		return
	}
	assign := n.NamedChild(0)
	if assign.Type() != "assignment" {
		return
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" || left.Content(src) != "__all__" {
		return
	}
	right := assign.ChildByFieldName("right")
	if right == nil {
		return
	}
	if t := right.Type(); t != "list" && t != "tuple" {
		return
	}
	m.HasExports = true
	for i := 0; i < int(right.NamedChildCount()); i++ {
		s := right.NamedChild(i)
		if s.Type() != "string" {
			continue
		}
		m.Exports = append(m.Exports, stringLiteral(s, src))
	}
}

func stringLiteral(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "string_content" {
			return c.Content(src)
		}
	}
	return strings.Trim(n.Content(src), `"'`)
}

func fieldText(n *sitter.Node, field string, src []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return c.Content(src)
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// firstErrorLine finds the first ERROR node, depth first.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return line(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() {
			return firstErrorLine(c)
		}
	}
	return line(n)
}
