package resolve

import (
	"erdgen/internal/decl"
	"erdgen/internal/model"
)

// Entities walks top-level declarations and extracts one entity per
// interface or object-shaped type alias. Alias declarations over arrays,
// unions or primitives (branded identifier types included) yield nothing.
func Entities(decls []decl.Declaration) []model.Entity {
	var entities []model.Entity
	for _, d := range decls {
		if e, ok := entityFrom(d); ok {
			entities = append(entities, e)
		}
	}
	return entities
}

func entityFrom(d decl.Declaration) (model.Entity, bool) {
	if d.Name == "" || !d.IsObjectShaped() {
		return model.Entity{}, false
	}
	e := model.Entity{
		Name:       d.Name,
		Kind:       d.Kind,
		Extends:    d.Extends,
		Doc:        d.Doc,
		SourceFile: d.SourceFile,
	}
	for _, tp := range d.TypeParams {
		e.TypeParameters = append(e.TypeParameters, model.TypeParameter{
			Name:       tp.Name,
			Constraint: tp.Constraint,
			Default:    tp.Default,
		})
	}
	for _, p := range d.Properties {
		// Frontends hand through computed or otherwise non-plain keys as
		// empty names; those signatures are skipped.
		if p.Name == "" {
			continue
		}
		t := Type(p.Type)
		t.IsOptional = t.IsOptional || p.Optional
		e.Properties = append(e.Properties, model.Property{
			Name:    p.Name,
			Type:    t,
			KeyType: InferKeyType(p.Name, p.Doc),
			Doc:     p.Doc,
		})
	}
	return e, true
}
