package render

import (
	"strings"

	"erdgen/internal/model"
)

// mermaidGenerator emits Mermaid erDiagram text.
type mermaidGenerator struct{}

// Relationship markers keyed by each side's multiplicity.
var (
	mermaidLeft = map[string]string{
		"one":         "||",
		"zero-or-one": "|o",
		"many":        "}o",
	}
	mermaidRight = map[string]string{
		"one":          "||",
		"zero-or-one":  "o|",
		"many":         "|{",
		"zero-or-more": "o{",
	}
)

func (mermaidGenerator) Generate(d model.ERDiagram, opts Options) string {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for _, rel := range d.Relationships {
		line := "--"
		if !rel.IsIdentifying {
			line = ".."
		}
		left := mermaidLeft[rel.Cardinality.FromSide()]
		right := mermaidRight[rel.Cardinality.ToSide()]
		b.WriteString("    " + rel.From + " " + left + line + right + " " + rel.To + " : " + mermaidLabel(rel.Label) + "\n")
	}

	if opts.ShowProperties {
		for _, e := range d.Entities {
			b.WriteString("    " + e.Name + " {\n")
			for _, p := range e.Properties {
				b.WriteString("        " + mermaidAttribute(p) + "\n")
			}
			b.WriteString("    }\n")
		}
	}
	return b.String()
}

// mermaidLabel quotes a label containing whitespace or quote characters.
func mermaidLabel(label string) string {
	if label == "" {
		return `""`
	}
	if strings.ContainsAny(label, " \t\"'") {
		return `"` + strings.ReplaceAll(label, `"`, `'`) + `"`
	}
	return label
}

// mermaidAttribute renders one `type name [keyType] ["comment"]` line.
func mermaidAttribute(p model.Property) string {
	parts := []string{mermaidTypeName(p.Type), sanitizeName(p.Name)}
	if p.KeyType != "" {
		parts = append(parts, string(p.KeyType))
	}
	if c := truncateComment(p.Doc, 40); c != "" {
		parts = append(parts, `"`+c+`"`)
	}
	return strings.Join(parts, " ")
}

// mermaidTypeName normalizes a display type name for the attribute grammar:
// union separators, generic brackets and commas all become hyphens.
func mermaidTypeName(t model.PropertyType) string {
	name := typeDisplay(t)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '|', '<', '>', ',', ' ':
			return '-'
		}
		return r
	}, name)
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	name = strings.Trim(name, "-")
	if name == "" {
		return "unknown"
	}
	return name
}

// typeDisplay reconstructs a readable type expression from a resolved type.
// Shared by the mermaid, d2 and drawio generators.
func typeDisplay(t model.PropertyType) string {
	name := t.Name
	if len(t.TypeArguments) > 0 {
		args := make([]string, len(t.TypeArguments))
		for i, a := range t.TypeArguments {
			args[i] = typeDisplay(a)
		}
		name += "<" + strings.Join(args, ", ") + ">"
	}
	if t.IsArray {
		name += "[]"
	}
	return name
}

// sanitizeName restricts a property name to [A-Za-z0-9_] when needed.
func sanitizeName(name string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return clean
}

// truncateComment flattens a doc block to one line of at most max runes.
func truncateComment(doc string, max int) string {
	doc = strings.Join(strings.Fields(doc), " ")
	doc = strings.ReplaceAll(doc, `"`, "'")
	runes := []rune(doc)
	if len(runes) > max {
		doc = string(runes[:max])
	}
	return strings.TrimSpace(doc)
}

func init() {
	Register("mermaid", mermaidGenerator{})
}
