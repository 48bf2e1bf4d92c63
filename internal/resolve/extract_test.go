package resolve

import (
	"testing"

	"erdgen/internal/decl"
	"erdgen/internal/model"
)

func TestEntities(t *testing.T) {
	decls := []decl.Declaration{
		{
			Name: "User",
			Kind: "interface",
			Doc:  "Account holder",
			Properties: []decl.PropertySig{
				{Name: "id", Type: decl.Ident("string"), Doc: "@pk"},
				{Name: "nickname", Type: decl.Ident("string"), Optional: true},
				{Name: "posts", Type: decl.Array(decl.Ident("Post"))},
				{Name: "", Type: decl.Ident("string")}, // computed key, skipped
			},
		},
		{
			Name:    "Admin",
			Kind:    "type",
			Extends: []string{"User"},
			TypeParams: []decl.TypeParam{
				{Name: "T", Constraint: "string"},
			},
			Properties: []decl.PropertySig{
				{Name: "level", Type: decl.Ident("number")},
			},
		},
		// branded alias, never an entity
		{Name: "UserId", Kind: "type", Alias: decl.Ident("string")},
		// union alias, never an entity
		{Name: "Status", Kind: "type", Alias: decl.Union(decl.Literal("string", "on"), decl.Literal("string", "off"))},
		// nameless declarations produce nothing
		{Name: "", Kind: "interface"},
	}

	entities := Entities(decls)
	if len(entities) != 2 {
		t.Fatalf("\ngot %d entities, wanted 2", len(entities))
	}

	user := entities[0]
	if user.Name != "User" || user.Kind != "interface" || user.Doc != "Account holder" {
		t.Errorf("\ngot entity %+v, wanted User interface", user)
	}
	if len(user.Properties) != 3 {
		t.Fatalf("\ngot %d properties, wanted 3 (computed key skipped)", len(user.Properties))
	}
	if user.Properties[0].KeyType != model.PrimaryKey {
		t.Errorf("\ngot key type %q for id, wanted PK", user.Properties[0].KeyType)
	}
	if !user.Properties[1].Type.IsOptional {
		t.Errorf("\noptional marker was not carried onto the type")
	}
	if p := user.Properties[2]; !p.Type.IsArray || p.Type.ReferenceTo != "Post" {
		t.Errorf("\ngot posts type %+v, wanted Post array reference", p.Type)
	}

	admin := entities[1]
	if admin.Kind != "type" || len(admin.Extends) != 1 || admin.Extends[0] != "User" {
		t.Errorf("\ngot entity %+v, wanted type extending User", admin)
	}
	if len(admin.TypeParameters) != 1 || admin.TypeParameters[0].Constraint != "string" {
		t.Errorf("\ngot type parameters %+v, wanted [T extends string]", admin.TypeParameters)
	}
}

func TestEntitiesDeclarationOrder(t *testing.T) {
	decls := []decl.Declaration{
		{Name: "B", Kind: "interface", Properties: []decl.PropertySig{
			{Name: "z", Type: decl.Ident("string")},
			{Name: "a", Type: decl.Ident("string")},
			{Name: "m", Type: decl.Ident("string")},
		}},
	}
	entities := Entities(decls)
	if len(entities) != 1 {
		t.Fatalf("\ngot %d entities, wanted 1", len(entities))
	}
	order := []string{"z", "a", "m"}
	for i, p := range entities[0].Properties {
		if p.Name != order[i] {
			t.Errorf("\ngot property %q at %d, wanted %q (declaration order)", p.Name, i, order[i])
		}
	}
}
