package render

import (
	"strings"
	"testing"

	"erdgen/internal/model"
)

// fixture returns the User/Post diagram used across the generator tests.
func fixture() model.ERDiagram {
	return model.ERDiagram{
		Entities: []model.Entity{
			{
				Name: "User",
				Kind: "interface",
				Properties: []model.Property{
					{Name: "id", Type: model.PropertyType{Name: "string", IsPrimitive: true}, KeyType: model.PrimaryKey},
					{Name: "posts", Type: model.PropertyType{Name: "Post", IsReference: true, ReferenceTo: "Post", IsArray: true}},
				},
			},
			{
				Name: "Post",
				Kind: "interface",
				Properties: []model.Property{
					{Name: "id", Type: model.PropertyType{Name: "string", IsPrimitive: true}, KeyType: model.PrimaryKey},
					{Name: "authorId", Type: model.PropertyType{Name: "string", IsPrimitive: true}, KeyType: model.ForeignKey},
				},
			},
		},
		Relationships: []model.Relationship{
			{From: "User", To: "Post", Cardinality: model.OneToMany, Label: "posts", IsIdentifying: true},
		},
	}
}

func TestNew(t *testing.T) {
	var tests = []struct {
		format   string
		errIsNil bool
	}{
		{"mermaid", true},
		{"mmd", true},
		{"d2", true},
		{"drawio", true},
		{"draw.io", true},
		{"xml", true},
		{"DRAWIO", true},
		{"dot", false},
		{"", false},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.format, func(t *testing.T) {
			g, err := New(tt.format)
			if (err == nil) != tt.errIsNil {
				if tt.errIsNil {
					t.Errorf("\ngot unexpected error: \"%v\"", err)
				} else {
					t.Errorf("\nexpected an error, did not receive one")
				}
			}
			if tt.errIsNil && g == nil {
				t.Errorf("\ngot nil generator for registered format %q", tt.format)
			}
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	var tests = []struct {
		formatIn  string
		formatOut string
	}{
		{"mermaid", "mermaid"},
		{"mmd", "mermaid"},
		{"erdiagram", "mermaid"},
		{"d2", "d2"},
		{"drawio", "drawio"},
		{"draw.io", "drawio"},
		{"mxfile", "drawio"},
		{"xml", "drawio"},
		{"UNKNOWN", "unknown"},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.formatIn, func(t *testing.T) {
			if got := NormalizeFormat(tt.formatIn); got != tt.formatOut {
				t.Errorf("\ngot format %v, wanted %v ", got, tt.formatOut)
			}
		})
	}
}

// Every generator must mention every entity name and produce byte-identical
// output across repeated calls with identical arguments.
func TestGeneratorsContainEntitiesAndAreIdempotent(t *testing.T) {
	d := fixture()
	for _, format := range []string{"mermaid", "d2", "drawio"} {
		t.Run(format, func(t *testing.T) {
			g, err := New(format)
			if err != nil {
				t.Fatalf("\ngot unexpected error: \"%v\"", err)
			}
			opts := DefaultOptions()
			first := g.Generate(d, opts)
			for _, e := range d.Entities {
				if !strings.Contains(first, e.Name) {
					t.Errorf("\n%s output does not contain entity %q", format, e.Name)
				}
			}
			if second := g.Generate(d, opts); second != first {
				t.Errorf("\n%s output differs between identical calls", format)
			}
		})
	}
}
