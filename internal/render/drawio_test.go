package render

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"erdgen/internal/model"
)

// wellFormed walks the whole document with the xml decoder, which fails on
// unbalanced tags or bad escaping.
func wellFormed(t *testing.T, out string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("\noutput is not well-formed XML: %v\n%s", err, out)
		}
	}
}

func TestDrawioDocumentShape(t *testing.T) {
	out := drawioGenerator{}.Generate(fixture(), DefaultOptions())

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("\nmissing XML declaration:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</mxfile>") {
		t.Errorf("\noutput does not end with </mxfile>:\n%s", out)
	}
	wellFormed(t, out)
}

func TestDrawioEmptyDiagram(t *testing.T) {
	out := drawioGenerator{}.Generate(model.ERDiagram{}, Options{})
	wellFormed(t, out)
	if !strings.Contains(out, `<mxCell id="0" />`) || !strings.Contains(out, `<mxCell id="1" parent="0" />`) {
		t.Errorf("\nmissing root cells in empty document:\n%s", out)
	}
}

func TestDrawioIDOrdering(t *testing.T) {
	out := drawioGenerator{}.Generate(fixture(), DefaultOptions())

	// roots, then per entity the container followed by its rows, then edges
	wantOrder := []string{
		`id="0"`, `id="1"`,
		`id="2" value="User"`, `id="3" value="id: string PK"`, `id="4" value="posts: Post[]"`,
		`id="5" value="Post"`, `id="6"`, `id="7"`,
		`id="8" value="posts"`,
	}
	pos := -1
	for _, want := range wantOrder {
		i := strings.Index(out, want)
		if i < 0 {
			t.Fatalf("\nmissing %q in output:\n%s", want, out)
		}
		if i < pos {
			t.Errorf("\n%q appears out of order", want)
		}
		pos = i
	}
}

func TestDrawioRowStacking(t *testing.T) {
	out := drawioGenerator{}.Generate(fixture(), DefaultOptions())
	// every property row sits at the same local offset; this mirrors the
	// known visual defect and is part of the compatibility contract
	if got := strings.Count(out, `<mxGeometry y="30" width="200" height="26" as="geometry" />`); got != 4 {
		t.Errorf("\ngot %d rows at local y=30, wanted all 4:\n%s", got, out)
	}
}

func TestDrawioLayout(t *testing.T) {
	entities := make([]model.Entity, 3)
	for i, name := range []string{"A", "B", "C"} {
		entities[i] = model.Entity{Name: name, Properties: []model.Property{
			{Name: "id", Type: model.PropertyType{Name: "string", IsPrimitive: true}},
		}}
	}
	out := drawioGenerator{}.Generate(model.ERDiagram{Entities: entities}, Options{
		EntitiesPerRow: 2, HSpacing: 100, VSpacing: 50,
	})

	// row-major placement: margin 40, third entity wraps to the second row
	if !strings.Contains(out, `<mxGeometry x="40" y="40" width="200" height="56"`) {
		t.Errorf("\nfirst entity not at the margin:\n%s", out)
	}
	if !strings.Contains(out, `<mxGeometry x="140" y="40"`) {
		t.Errorf("\nsecond entity not one h-spacing over:\n%s", out)
	}
	if !strings.Contains(out, `<mxGeometry x="40" y="90"`) {
		t.Errorf("\nthird entity did not wrap to the next row:\n%s", out)
	}
}

func TestDrawioArrows(t *testing.T) {
	var tests = []struct {
		name        string
		cardinality model.Cardinality
		start       string
		end         string
	}{
		{"one-to-one", model.OneToOne, "startArrow=none;", "endArrow=ERone;"},
		{"one-to-many", model.OneToMany, "startArrow=none;", "endArrow=ERmany;"},
		{"one-to-zero-or-one", model.OneToZeroOrOne, "startArrow=none;", "endArrow=ERoneToMany;"},
		{"one-to-zero-or-more", model.OneToZeroOrMore, "startArrow=none;", "endArrow=ERmany;"},
		{"zero-or-one-to-one", model.ZeroOrOneToOne, "startArrow=oval;", "endArrow=ERone;"},
		{"many-to-many", model.ManyToMany, "startArrow=ERmany;", "endArrow=ERmany;"},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.name, func(t *testing.T) {
			d := model.ERDiagram{
				Entities: []model.Entity{{Name: "A"}, {Name: "B"}},
				Relationships: []model.Relationship{
					{From: "A", To: "B", Cardinality: tt.cardinality, Label: "r"},
				},
			}
			out := drawioGenerator{}.Generate(d, Options{})
			if !strings.Contains(out, tt.start) || !strings.Contains(out, tt.end) {
				t.Errorf("\ngot:\n%s\nwanted arrows %q and %q", out, tt.start, tt.end)
			}
		})
	}
}

func TestDrawioEscaping(t *testing.T) {
	d := model.ERDiagram{
		Entities: []model.Entity{{Name: `A<B> & "C"`}},
	}
	out := drawioGenerator{}.Generate(d, Options{Title: "it's <great>"})
	wellFormed(t, out)
	if strings.Contains(out, `value="A<B>`) {
		t.Errorf("\nentity name was not escaped:\n%s", out)
	}
	if !strings.Contains(out, "it&apos;s &lt;great&gt;") {
		t.Errorf("\ntitle was not escaped:\n%s", out)
	}
}

func TestDrawioTimestamp(t *testing.T) {
	d := fixture()
	without := drawioGenerator{}.Generate(d, Options{})
	if strings.Contains(without, "modified=") {
		t.Errorf("\ngot a modified attribute without a timestamp option")
	}
	with := drawioGenerator{}.Generate(d, Options{Timestamp: "2024-01-01T00:00:00Z"})
	if !strings.Contains(with, `modified="2024-01-01T00:00:00Z"`) {
		t.Errorf("\nmissing modified attribute:\n%s", with)
	}
	wellFormed(t, with)
}

func TestDrawioSkipsUnknownEndpoints(t *testing.T) {
	d := model.ERDiagram{
		Entities: []model.Entity{{Name: "A"}},
		Relationships: []model.Relationship{
			{From: "A", To: "Ghost", Cardinality: model.OneToOne, Label: "r"},
		},
	}
	out := drawioGenerator{}.Generate(d, Options{})
	wellFormed(t, out)
	if strings.Contains(out, `edge="1"`) {
		t.Errorf("\ngot an edge to a missing container:\n%s", out)
	}
}
