package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"erdgen/internal/decl"
)

// goFrontend reads Go source. Struct declarations become object-shaped
// declarations; everything else (branded types like `type UserID string`,
// slices, maps) becomes an alias declaration, so only record shapes turn
// into entities. Property names prefer the json tag when present.
type goFrontend struct{}

func (goFrontend) Parse(filename string, src []byte) ([]decl.Declaration, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	var decls []decl.Declaration
	for _, gd := range file.Decls {
		gen, ok := gd.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			d := decl.Declaration{
				Name:       ts.Name.Name,
				Kind:       "type",
				Doc:        docText(ts.Doc, gen.Doc),
				SourceFile: filename,
			}
			if ts.TypeParams != nil {
				for _, f := range ts.TypeParams.List {
					constraint := exprString(f.Type)
					for _, n := range f.Names {
						d.TypeParams = append(d.TypeParams, decl.TypeParam{Name: n.Name, Constraint: constraint})
					}
				}
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				d.Alias = goTypeNode(ts.Type)
				if d.Alias == nil {
					d.Alias = &decl.TypeNode{}
				}
				decls = append(decls, d)
				continue
			}
			for _, f := range st.Fields.List {
				if len(f.Names) == 0 {
					// Embedded field, treated as inheritance.
					if name := embeddedName(f.Type); name != "" {
						d.Extends = append(d.Extends, name)
					}
					continue
				}
				doc := docText(f.Doc, f.Comment)
				for _, n := range f.Names {
					if !n.IsExported() {
						continue
					}
					name, optional := fieldName(n.Name, f.Tag)
					if name == "" {
						continue
					}
					t := goTypeNode(f.Type)
					d.Properties = append(d.Properties, decl.PropertySig{
						Name:     name,
						Type:     t,
						Optional: optional,
						Doc:      doc,
					})
				}
			}
			decls = append(decls, d)
		}
	}
	return decls, nil
}

// goTypeNode maps a Go type expression to a neutral syntax node. Pointers
// become unions with null so the resolver records them as optional.
func goTypeNode(e ast.Expr) *decl.TypeNode {
	switch t := e.(type) {
	case *ast.Ident:
		return decl.Ident(mapGoIdent(t.Name))
	case *ast.StarExpr:
		elem := goTypeNode(t.X)
		if elem == nil {
			return nil
		}
		return decl.Union(elem, decl.Ident("null"))
	case *ast.ArrayType:
		elem := goTypeNode(t.Elt)
		if elem == nil {
			return nil
		}
		return decl.Array(elem)
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok && x.Name == "time" && t.Sel.Name == "Time" {
			return decl.Ident("Date")
		}
		return decl.Ident(t.Sel.Name)
	case *ast.MapType:
		k, v := goTypeNode(t.Key), goTypeNode(t.Value)
		if k == nil || v == nil {
			return nil
		}
		return decl.Ident("Map", k, v)
	case *ast.IndexExpr:
		base := goTypeNode(t.X)
		arg := goTypeNode(t.Index)
		if base == nil || base.Kind != decl.KindIdent || arg == nil {
			return nil
		}
		return decl.Ident(base.Name, arg)
	case *ast.IndexListExpr:
		base := goTypeNode(t.X)
		if base == nil || base.Kind != decl.KindIdent {
			return nil
		}
		args := make([]*decl.TypeNode, 0, len(t.Indices))
		for _, idx := range t.Indices {
			a := goTypeNode(idx)
			if a == nil {
				return nil
			}
			args = append(args, a)
		}
		return decl.Ident(base.Name, args...)
	case *ast.InterfaceType:
		return decl.Ident("any")
	}
	// Channels, funcs, inline structs: degrade to unknown.
	return nil
}

// mapGoIdent folds Go primitive names into the canonical primitive set.
func mapGoIdent(name string) string {
	switch name {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "byte", "rune":
		return "number"
	case "complex64", "complex128":
		return "number"
	case "any", "error":
		return "any"
	}
	return name
}

// fieldName picks the json tag name when one is present; a "-" tag drops the
// field, an "omitempty" option marks it optional.
func fieldName(goName string, tag *ast.BasicLit) (string, bool) {
	if tag == nil {
		return goName, false
	}
	raw := strings.Trim(tag.Value, "`")
	value, ok := lookupTag(raw, "json")
	if !ok {
		return goName, false
	}
	parts := strings.Split(value, ",")
	name := parts[0]
	optional := false
	for _, p := range parts[1:] {
		if p == "omitempty" {
			optional = true
		}
	}
	switch name {
	case "-":
		return "", false
	case "":
		return goName, optional
	}
	return name, optional
}

// lookupTag is a minimal struct-tag lookup, enough for json tags.
func lookupTag(tag, key string) (string, bool) {
	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		i := strings.Index(tag, ":\"")
		if i < 0 {
			break
		}
		name := tag[:i]
		rest := tag[i+2:]
		j := strings.Index(rest, "\"")
		if j < 0 {
			break
		}
		if name == key {
			return rest[:j], true
		}
		tag = rest[j+1:]
	}
	return "", false
}

func embeddedName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

func docText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g != nil {
			return strings.TrimSpace(g.Text())
		}
	}
	return ""
}

func exprString(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return exprString(t.X) + "." + t.Sel.Name
	}
	return ""
}

func init() {
	Register("go", goFrontend{})
}
