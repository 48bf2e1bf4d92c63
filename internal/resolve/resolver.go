// Package resolve turns declaration facts into the canonical entity model:
// type resolution, key classification and entity extraction.
package resolve

import (
	"strings"

	"erdgen/internal/decl"
	"erdgen/internal/model"
)

// primitives is the fixed set of names that never count as entity references.
var primitives = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"null":      true,
	"undefined": true,
	"void":      true,
	"never":     true,
	"unknown":   true,
	"any":       true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
}

// unknownType is the degraded result for anything the resolver cannot
// classify. It flows through to output as literal text.
func unknownType() model.PropertyType {
	return model.PropertyType{Name: "unknown"}
}

// Type maps one syntactic type node to its canonical PropertyType. It is a
// total function: unrecognized input degrades to "unknown", it never fails.
func Type(n *decl.TypeNode) model.PropertyType {
	if n == nil {
		return unknownType()
	}
	switch n.Kind {
	case decl.KindIdent:
		return resolveIdent(n)
	case decl.KindArray:
		t := Type(n.Elem)
		t.IsArray = true
		return t
	case decl.KindUnion:
		return resolveUnion(n)
	case decl.KindLiteral:
		return model.PropertyType{Name: n.Base, IsPrimitive: true, LiteralValue: n.Literal}
	default:
		return unknownType()
	}
}

func resolveIdent(n *decl.TypeNode) model.PropertyType {
	// Array<T> is sugar for an array of its single argument.
	if n.Name == "Array" && len(n.Args) == 1 {
		t := Type(n.Args[0])
		t.IsArray = true
		return t
	}
	t := model.PropertyType{Name: n.Name, IsPrimitive: primitives[n.Name]}
	if !t.IsPrimitive {
		t.IsReference = true
		t.ReferenceTo = n.Name
	}
	// Type arguments are resolved for display only; relationship inference
	// looks no deeper than the first-level name.
	for _, a := range n.Args {
		t.TypeArguments = append(t.TypeArguments, Type(a))
	}
	return t
}

func resolveUnion(n *decl.TypeNode) model.PropertyType {
	var members []model.PropertyType
	hadNull := false
	for _, m := range n.Members {
		t := Type(m)
		if t.Name == "null" || t.Name == "undefined" {
			hadNull = true
			continue
		}
		members = append(members, t)
	}
	switch len(members) {
	case 0:
		return model.PropertyType{Name: "null", IsPrimitive: true, IsOptional: true}
	case 1:
		t := members[0]
		t.IsOptional = t.IsOptional || hadNull
		return t
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return model.PropertyType{
		Name:       strings.Join(names, " | "),
		IsOptional: hadNull,
		UnionTypes: members,
	}
}
