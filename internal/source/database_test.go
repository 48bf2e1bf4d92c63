package source

import (
	"reflect"
	"testing"

	"erdgen/internal/analyze"
	"erdgen/internal/db"
	"erdgen/internal/model"
)

func TestEntitiesFromSchema(t *testing.T) {
	comment := "account rows"
	s := db.Schema{
		Tables: []db.Table{
			{
				Name:    "user_accounts",
				Comment: &comment,
				Columns: []db.Column{
					{Name: "id", Type: "uuid", PK: true},
					{Name: "email", Type: "varchar(255)"},
					{Name: "age", Type: "integer", Nullable: true},
					{Name: "created_at", Type: "timestamp with time zone"},
				},
			},
			{
				Name: "posts",
				Columns: []db.Column{
					{Name: "id", Type: "uuid", PK: true},
					{Name: "title", Type: "text"},
					{Name: "author_id", Type: "uuid"},
				},
			},
		},
		ForeignKeys: []db.ForeignKey{
			{FromTable: "posts", FromColumn: "author_id", ToTable: "user_accounts", ToColumn: "id"},
		},
	}

	entities := EntitiesFromSchema(s)
	if len(entities) != 2 {
		t.Fatalf("\ngot %d entities, wanted 2 ", len(entities))
	}

	user := entities[0]
	if user.Name != "UserAccount" || user.Doc != "account rows" || user.SourceFile != "user_accounts" {
		t.Errorf("\ngot entity %+v, wanted documented UserAccount ", user)
	}
	wantProps := []model.Property{
		{Name: "id", Type: model.PropertyType{Name: "string", IsPrimitive: true}, KeyType: model.PrimaryKey},
		{Name: "email", Type: model.PropertyType{Name: "string", IsPrimitive: true}},
		{Name: "age", Type: model.PropertyType{Name: "number", IsPrimitive: true, IsOptional: true}},
		{Name: "created_at", Type: model.PropertyType{Name: "Date", IsReference: true, ReferenceTo: "Date"}},
	}
	if !reflect.DeepEqual(user.Properties, wantProps) {
		t.Errorf("\ngot properties %+v, wanted %+v ", user.Properties, wantProps)
	}

	post := entities[1]
	author := post.Properties[2]
	wantAuthor := model.Property{
		Name:    "author_id",
		Type:    model.PropertyType{Name: "UserAccount", IsReference: true, ReferenceTo: "UserAccount"},
		KeyType: model.ForeignKey,
	}
	if !reflect.DeepEqual(author, wantAuthor) {
		t.Errorf("\ngot property %+v, wanted %+v ", author, wantAuthor)
	}

	rels := analyze.Relationships(entities)
	if len(rels) != 1 {
		t.Fatalf("\ngot %d relationships, wanted 1 ", len(rels))
	}
	want := model.Relationship{
		From:          "Post",
		To:            "UserAccount",
		Cardinality:   model.OneToOne,
		Label:         "author_id",
		IsIdentifying: true,
	}
	if !reflect.DeepEqual(rels[0], want) {
		t.Errorf("\ngot relationship %+v, wanted %+v ", rels[0], want)
	}
}

func TestColumnTypeName(t *testing.T) {
	var tests = []struct {
		in   string
		want string
	}{
		{"VARCHAR(255)", "string"},
		{"character varying", "string"},
		{"uuid", "string"},
		{"BIGINT", "number"},
		{"numeric(10, 2)", "number"},
		{"boolean", "boolean"},
		{"bit", "boolean"},
		{"timestamptz", "Date"},
		{"datetime2", "Date"},
		{"jsonb", "jsonb"},
		{"bytea", "bytea"},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.in, func(t *testing.T) {
			if got := columnTypeName(tt.in); got != tt.want {
				t.Errorf("\ngot type %q, wanted %q ", got, tt.want)
			}
		})
	}
}

func TestEntityName(t *testing.T) {
	var tests = []struct {
		table string
		want  string
	}{
		{"users", "User"},
		{"user_accounts", "UserAccount"},
		{"categories", "Category"},
		{"order_items", "OrderItem"},
		{"person", "Person"},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.table, func(t *testing.T) {
			if got := entityName(tt.table); got != tt.want {
				t.Errorf("\ngot name %q, wanted %q ", got, tt.want)
			}
		})
	}
}
