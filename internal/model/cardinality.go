package model

import "strings"

// Cardinality describes how many "to" instances correspond to one "from"
// instance and whether either side is optional.
type Cardinality string

const (
	OneToOne        Cardinality = "one-to-one"
	OneToMany       Cardinality = "one-to-many"
	OneToZeroOrOne  Cardinality = "one-to-zero-or-one"
	OneToZeroOrMore Cardinality = "one-to-zero-or-more"
	ManyToOne       Cardinality = "many-to-one"
	ManyToMany      Cardinality = "many-to-many"
	ZeroOrOneToOne  Cardinality = "zero-or-one-to-one"
	ZeroOrOneToMany Cardinality = "zero-or-one-to-many"
)

// CardinalityOf maps a property's array/optional flags to a cardinality.
// This is the only place cardinalities are assigned; the resolver never
// produces the many-* or zero-or-one-* values, they exist so the generator
// marker tables stay symmetric.
func CardinalityOf(isArray, isOptional bool) Cardinality {
	switch {
	case isArray && isOptional:
		return OneToZeroOrMore
	case isArray:
		return OneToMany
	case isOptional:
		return OneToZeroOrOne
	default:
		return OneToOne
	}
}

// FromSide returns the "from" multiplicity, e.g. "one" for one-to-many.
func (c Cardinality) FromSide() string {
	if i := strings.Index(string(c), "-to-"); i >= 0 {
		return string(c)[:i]
	}
	return string(c)
}

// ToSide returns the "to" multiplicity, e.g. "many" for one-to-many.
func (c Cardinality) ToSide() string {
	if i := strings.Index(string(c), "-to-"); i >= 0 {
		return string(c)[i+len("-to-"):]
	}
	return string(c)
}
