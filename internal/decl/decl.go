// Package decl defines the per-declaration facts the core consumes. Frontends
// (yaml documents, Go source, database schemas) produce these; the resolver
// never sees frontend-specific syntax trees.
package decl

// NodeKind discriminates TypeNode variants.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	KindIdent            // type reference or primitive keyword, with optional type arguments
	KindArray            // sugared array, T[]
	KindUnion            // union of members, A | B
	KindLiteral          // string/number/boolean literal
)

// TypeNode is one syntactic type expression. Only the fields relevant to the
// Kind are set; the resolver treats anything else as unknown.
type TypeNode struct {
	Kind    NodeKind
	Name    string      // KindIdent
	Args    []*TypeNode // KindIdent type arguments
	Elem    *TypeNode   // KindArray element
	Members []*TypeNode // KindUnion members
	Literal string      // KindLiteral raw value
	Base    string      // KindLiteral base primitive ("string", "number", "boolean")
}

// Ident builds an identifier node.
func Ident(name string, args ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindIdent, Name: name, Args: args}
}

// Array builds a sugared array node around elem.
func Array(elem *TypeNode) *TypeNode {
	return &TypeNode{Kind: KindArray, Elem: elem}
}

// Union builds a union node over members.
func Union(members ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindUnion, Members: members}
}

// Literal builds a literal node with its base primitive name.
func Literal(base, value string) *TypeNode {
	return &TypeNode{Kind: KindLiteral, Base: base, Literal: value}
}

// TypeParam is a generic parameter with optional constraint/default strings.
type TypeParam struct {
	Name       string
	Constraint string
	Default    string
}

// PropertySig is one property signature of a declaration.
type PropertySig struct {
	Name     string
	Type     *TypeNode
	Optional bool
	Doc      string
}

// Declaration is one top-level record-type declaration. Object-shaped
// declarations carry Properties; alias declarations (e.g. a branded string
// type) carry Alias instead and produce no entity.
type Declaration struct {
	Name       string
	Kind       string // "interface" or "type"
	Doc        string
	Extends    []string
	TypeParams []TypeParam
	Properties []PropertySig
	Alias      *TypeNode
	SourceFile string
}

// IsObjectShaped reports whether the declaration describes a record shape the
// extractor should turn into an entity.
func (d Declaration) IsObjectShaped() bool {
	return d.Kind == "interface" || (d.Kind == "type" && d.Alias == nil)
}
