package db

// Column is one table column as read from the catalog.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	PK       bool    `json:"pk"`
	Comment  *string `json:"comment,omitempty"`
}

// ForeignKey is one referencing column of a foreign-key constraint.
// Composite constraints appear as one entry per column pair.
type ForeignKey struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
	Constraint string `json:"constraint,omitempty"`
}

// Table is one base table with its columns in ordinal order.
type Table struct {
	Schema  string   `json:"schema,omitempty"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Comment *string  `json:"comment,omitempty"`
}

// Schema is the raw database shape the dialect extractors produce. The
// database frontend converts it into entities.
type Schema struct {
	Tables      []Table      `json:"tables"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}
