package model

// KeyType classifies a property as a primary, foreign or unique key.
type KeyType string

const (
	PrimaryKey KeyType = "PK"
	ForeignKey KeyType = "FK"
	UniqueKey  KeyType = "UK"
)

// PropertyType is the canonical description of a resolved type expression.
// Values are built once by the resolver and never mutated afterwards.
type PropertyType struct {
	Name          string         `json:"name"`
	IsArray       bool           `json:"isArray"`
	IsOptional    bool           `json:"isOptional"`
	IsReference   bool           `json:"isReference"`
	ReferenceTo   string         `json:"referenceTo,omitempty"`
	IsPrimitive   bool           `json:"isPrimitive"`
	TypeArguments []PropertyType `json:"typeArguments,omitempty"`
	UnionTypes    []PropertyType `json:"unionTypes,omitempty"`
	LiteralValue  string         `json:"literalValue,omitempty"`
}

// Property is a named, typed field of an entity. Declaration order is
// preserved by the extractor.
type Property struct {
	Name    string       `json:"name"`
	Type    PropertyType `json:"type"`
	KeyType KeyType      `json:"keyType,omitempty"`
	Doc     string       `json:"doc,omitempty"`
}

// TypeParameter is a generic parameter on an entity declaration. Constraint
// and default are kept as display strings only.
type TypeParameter struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
	Default    string `json:"default,omitempty"`
}

// Entity is a named record type with an ordered property list.
type Entity struct {
	Name           string          `json:"name"`
	Kind           string          `json:"kind"` // "interface" or "type"
	Properties     []Property      `json:"properties"`
	Extends        []string        `json:"extends,omitempty"`
	TypeParameters []TypeParameter `json:"typeParameters,omitempty"`
	Doc            string          `json:"doc,omitempty"`
	SourceFile     string          `json:"sourceFile,omitempty"`
}

// Relationship is a directed edge between two entity names. Entities are
// addressed by name, never by object reference, so the model stays a flat
// graph even for self-referential types.
type Relationship struct {
	From          string      `json:"from"`
	To            string      `json:"to"`
	Cardinality   Cardinality `json:"cardinality"`
	Label         string      `json:"label"`
	IsIdentifying bool        `json:"isIdentifying"`
}

// Metadata describes one parse run.
type Metadata struct {
	Title       string   `json:"title,omitempty"`
	SourceFiles []string `json:"sourceFiles,omitempty"`
}

// ERDiagram is the complete snapshot handed to generators. Generators treat
// it as read-only.
type ERDiagram struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	Metadata      Metadata       `json:"metadata"`
}
