package source

import (
	"strings"

	"github.com/go-openapi/inflect"

	"erdgen/internal/db"
	"erdgen/internal/decl"
	"erdgen/internal/model"
	"erdgen/internal/resolve"
)

// EntitiesFromSchema converts a raw database schema into entities. Table
// names are singularized and camelized ("user_accounts" becomes
// "UserAccount"); foreign-key columns get reference types pointing at the
// target entity so the relationship resolver reconstructs the constraint
// edges, and nullable columns become optional properties.
func EntitiesFromSchema(s db.Schema) []model.Entity {
	refs := make(map[string]string, len(s.ForeignKeys))
	for _, fk := range s.ForeignKeys {
		refs[fk.FromTable+"."+fk.FromColumn] = entityName(fk.ToTable)
	}

	entities := make([]model.Entity, 0, len(s.Tables))
	for _, t := range s.Tables {
		e := model.Entity{
			Name:       entityName(t.Name),
			Kind:       "type",
			SourceFile: t.Name,
		}
		if t.Comment != nil {
			e.Doc = *t.Comment
		}
		for _, c := range t.Columns {
			e.Properties = append(e.Properties, columnProperty(t.Name, c, refs))
		}
		entities = append(entities, e)
	}
	return entities
}

func columnProperty(table string, c db.Column, refs map[string]string) model.Property {
	name := columnTypeName(c.Type)
	target, isFK := refs[table+"."+c.Name]
	if isFK {
		name = target
	}
	pt := resolve.Type(decl.Ident(name))
	pt.IsOptional = c.Nullable

	p := model.Property{Name: c.Name, Type: pt}
	if c.Comment != nil {
		p.Doc = *c.Comment
	}
	switch {
	case c.PK:
		p.KeyType = model.PrimaryKey
	case isFK:
		p.KeyType = model.ForeignKey
	default:
		p.KeyType = resolve.InferKeyType(c.Name, p.Doc)
	}
	return p
}

// entityName derives an entity name from a table name.
func entityName(table string) string {
	return inflect.Camelize(inflect.Singularize(table))
}

// columnTypeName folds SQL type names into the canonical primitive set where
// possible, keeping the raw name (lowercased, without size suffix) otherwise.
func columnTypeName(sqlType string) string {
	t := strings.ToLower(sqlType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)
	switch t {
	case "char", "varchar", "nvarchar", "text", "character varying", "character", "uuid", "clob":
		return "string"
	case "int", "integer", "bigint", "smallint", "tinyint", "serial", "bigserial",
		"decimal", "numeric", "real", "float", "double", "double precision", "number", "money":
		return "number"
	case "bool", "boolean", "bit":
		return "boolean"
	case "date", "datetime", "datetime2", "timestamp", "timestamp with time zone",
		"timestamp without time zone", "timestamptz":
		return "Date"
	}
	return t
}
