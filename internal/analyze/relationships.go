// Package analyze derives relationship edges from a finished entity list and
// assembles the diagram snapshot handed to generators.
package analyze

import (
	"strings"

	"erdgen/internal/model"
)

// run holds the per-call state of one resolution pass. A fresh run is built
// at the top of every Relationships call, so concurrent calls never share
// the name index or the dedup set.
type run struct {
	known map[string]bool
	seen  map[string]bool
	rels  []model.Relationship
}

// Relationships derives the relationship edges for entities, applying the
// direct-reference, FK-by-name and inheritance rules in that order per
// property. Duplicate (from, to, label) triples keep the first occurrence.
// It never fails: unmatched references simply yield no edge.
func Relationships(entities []model.Entity) []model.Relationship {
	r := &run{
		known: make(map[string]bool, len(entities)),
		seen:  make(map[string]bool),
	}
	for _, e := range entities {
		r.known[e.Name] = true
	}
	for _, e := range entities {
		for _, p := range e.Properties {
			if r.directReference(e, p) {
				continue
			}
			r.foreignKeyByName(e, p)
		}
		for _, parent := range e.Extends {
			if r.known[parent] {
				r.add(model.Relationship{
					From:          e.Name,
					To:            parent,
					Cardinality:   model.OneToOne,
					Label:         "extends",
					IsIdentifying: true,
				})
			}
		}
	}
	return r.rels
}

// directReference emits an edge when the property's type directly names a
// known entity. Reports whether the property matched, so the FK heuristic is
// only tried for properties this rule passed over.
func (r *run) directReference(owner model.Entity, p model.Property) bool {
	t := p.Type
	if !t.IsReference || !r.known[t.ReferenceTo] {
		return false
	}
	r.add(model.Relationship{
		From:          owner.Name,
		To:            t.ReferenceTo,
		Cardinality:   model.CardinalityOf(t.IsArray, t.IsOptional),
		Label:         p.Name,
		IsIdentifying: !t.IsOptional,
	})
	return true
}

// foreignKeyByName resolves branded identifier types: a property already
// classified FK whose type name ends in "Id" is linked to the entity named by
// the stripped prefix, if one exists. This is the only signal a nominal
// subtype like UserId carries, since it holds no structural reference to its
// owning entity.
func (r *run) foreignKeyByName(owner model.Entity, p model.Property) {
	if p.KeyType != model.ForeignKey {
		return
	}
	target := p.Type.ReferenceTo
	if target == "" {
		target = p.Type.Name
	}
	if len(target) <= 2 || !strings.HasSuffix(target, "Id") {
		return
	}
	target = target[:len(target)-len("Id")]
	if !r.known[target] {
		return
	}
	r.add(model.Relationship{
		From:          owner.Name,
		To:            target,
		Cardinality:   model.CardinalityOf(false, p.Type.IsOptional),
		Label:         p.Name,
		IsIdentifying: !p.Type.IsOptional,
	})
}

func (r *run) add(rel model.Relationship) {
	key := rel.From + "\x00" + rel.To + "\x00" + rel.Label
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.rels = append(r.rels, rel)
}

// BuildDiagram runs relationship resolution over entities and returns the
// immutable snapshot for the generators.
func BuildDiagram(entities []model.Entity, meta model.Metadata) model.ERDiagram {
	return model.ERDiagram{
		Entities:      entities,
		Relationships: Relationships(entities),
		Metadata:      meta,
	}
}
