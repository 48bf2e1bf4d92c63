package source

import (
	"reflect"
	"testing"

	"erdgen/internal/decl"
)

func TestYAMLParse(t *testing.T) {
	src := []byte(`
declarations:
  - name: User
    kind: interface
    doc: An application user.
    properties:
      - name: id
        type: string
        doc: "@pk"
      - name: name
        type: string
      - name: posts
        type: Post[]
        optional: true
  - name: Post
    extends: [Base]
    properties:
      - name: id
        type: string
  - name: UserId
    alias: string
  - name: Pair
    kind: type
    typeParameters:
      - name: K
        constraint: string
      - name: V
    properties:
      - name: key
        type: K
      - name: value
        type: V
`)
	f, err := New("yaml")
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	decls, err := f.Parse("schema.yaml", src)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	if len(decls) != 4 {
		t.Fatalf("\ngot %d declarations, wanted 4 ", len(decls))
	}

	user := decls[0]
	if user.Name != "User" || user.Kind != "interface" || user.Doc != "An application user." {
		t.Errorf("\ngot declaration %+v, wanted User interface ", user)
	}
	if user.SourceFile != "schema.yaml" {
		t.Errorf("\ngot source file %q, wanted %q ", user.SourceFile, "schema.yaml")
	}
	if len(user.Properties) != 3 {
		t.Fatalf("\ngot %d properties, wanted 3 ", len(user.Properties))
	}
	wantPosts := decl.PropertySig{Name: "posts", Type: decl.Array(decl.Ident("Post")), Optional: true}
	if !reflect.DeepEqual(user.Properties[2], wantPosts) {
		t.Errorf("\ngot property %+v, wanted %+v ", user.Properties[2], wantPosts)
	}

	post := decls[1]
	if post.Kind != "interface" || !reflect.DeepEqual(post.Extends, []string{"Base"}) {
		t.Errorf("\ngot declaration %+v, wanted interface extending Base ", post)
	}

	userID := decls[2]
	if userID.Kind != "type" || !reflect.DeepEqual(userID.Alias, decl.Ident("string")) {
		t.Errorf("\ngot declaration %+v, wanted alias of string ", userID)
	}

	pair := decls[3]
	wantParams := []decl.TypeParam{{Name: "K", Constraint: "string"}, {Name: "V"}}
	if !reflect.DeepEqual(pair.TypeParams, wantParams) {
		t.Errorf("\ngot type parameters %+v, wanted %+v ", pair.TypeParams, wantParams)
	}
}

func TestYAMLParseMalformed(t *testing.T) {
	f, _ := New("yaml")
	if _, err := f.Parse("bad.yaml", []byte("declarations: [}")); err == nil {
		t.Errorf("\nexpected an error, did not receive one")
	}
}

// A property whose type expression does not parse keeps its slot with a nil
// node rather than failing the whole document.
func TestYAMLParseBadTypeExpr(t *testing.T) {
	src := []byte(`
declarations:
  - name: Broken
    properties:
      - name: field
        type: "Array<"
`)
	f, _ := New("yaml")
	decls, err := f.Parse("schema.yaml", src)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	if len(decls) != 1 || len(decls[0].Properties) != 1 {
		t.Fatalf("\ngot declarations %+v, wanted one with one property ", decls)
	}
	if decls[0].Properties[0].Type != nil {
		t.Errorf("\ngot type %+v, wanted nil ", decls[0].Properties[0].Type)
	}
}

func TestForFile(t *testing.T) {
	var tests = []struct {
		filename string
		errIsNil bool
	}{
		{"schema.yaml", true},
		{"schema.yml", true},
		{"schema.json", true},
		{"models.go", true},
		{"schema.sql", false},
		{"schema", false},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.filename, func(t *testing.T) {
			_, err := ForFile(tt.filename)
			if (err == nil) != tt.errIsNil {
				if tt.errIsNil {
					t.Errorf("\ngot unexpected error: \"%v\"", err)
				} else {
					t.Errorf("\nexpected an error, did not receive one")
				}
			}
		})
	}
}
