package render

import (
	"strings"

	"erdgen/internal/model"
)

// d2Generator emits D2 script. D2 has no cardinality markers on connections,
// so edges carry the label only.
type d2Generator struct{}

var d2Constraints = map[model.KeyType]string{
	model.PrimaryKey: "primary_key",
	model.ForeignKey: "foreign_key",
	model.UniqueKey:  "unique",
}

func (d2Generator) Generate(d model.ERDiagram, opts Options) string {
	direction := opts.Direction
	if direction == "" {
		direction = DefaultOptions().Direction
	}
	shape := opts.Shape
	if shape == "" {
		shape = DefaultOptions().Shape
	}

	var b strings.Builder
	b.WriteString("direction: " + direction + "\n")

	for _, e := range d.Entities {
		if !opts.ShowProperties {
			b.WriteString("\n" + e.Name + "\n")
			continue
		}
		b.WriteString("\n" + e.Name + ": {\n")
		b.WriteString("  shape: " + shape + "\n")
		for _, p := range e.Properties {
			b.WriteString("  " + p.Name + ": " + typeDisplay(p.Type))
			if c, ok := d2Constraints[p.KeyType]; ok {
				b.WriteString(" {constraint: " + c + "}")
			}
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}

	if len(d.Relationships) > 0 {
		b.WriteString("\n")
	}
	for _, rel := range d.Relationships {
		b.WriteString(rel.From + " -> " + rel.To)
		if rel.Label != "" {
			b.WriteString(": " + rel.Label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	Register("d2", d2Generator{})
}
