package source

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"erdgen/internal/decl"
	"erdgen/internal/logger"
)

// yamlFrontend reads declaration-facts documents. YAML is a superset of
// JSON, so .json inputs go through the same path.
type yamlFrontend struct{}

type yamlDocument struct {
	Declarations []yamlDeclaration `yaml:"declarations"`
}

type yamlDeclaration struct {
	Name           string          `yaml:"name"`
	Kind           string          `yaml:"kind"`
	Doc            string          `yaml:"doc"`
	Extends        []string        `yaml:"extends"`
	TypeParameters []yamlTypeParam `yaml:"typeParameters"`
	Properties     []yamlProperty  `yaml:"properties"`
	Alias          string          `yaml:"alias"`
}

type yamlTypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
	Default    string `yaml:"default"`
}

type yamlProperty struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Doc      string `yaml:"doc"`
}

func (yamlFrontend) Parse(filename string, src []byte) ([]decl.Declaration, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	var decls []decl.Declaration
	for _, yd := range doc.Declarations {
		d := decl.Declaration{
			Name:       yd.Name,
			Kind:       normalizeKind(yd.Kind),
			Doc:        yd.Doc,
			Extends:    yd.Extends,
			SourceFile: filename,
		}
		for _, tp := range yd.TypeParameters {
			d.TypeParams = append(d.TypeParams, decl.TypeParam{
				Name:       tp.Name,
				Constraint: tp.Constraint,
				Default:    tp.Default,
			})
		}
		if yd.Alias != "" {
			n, err := ParseTypeExpr(yd.Alias)
			if err != nil {
				logger.Warn("%s: alias of %s: %v", filename, yd.Name, err)
			}
			d.Kind = "type"
			d.Alias = n
			if d.Alias == nil {
				d.Alias = &decl.TypeNode{}
			}
			decls = append(decls, d)
			continue
		}
		for _, yp := range yd.Properties {
			p := decl.PropertySig{Name: yp.Name, Optional: yp.Optional, Doc: yp.Doc}
			if yp.Type != "" {
				n, err := ParseTypeExpr(yp.Type)
				if err != nil {
					// Degrade to unknown, the resolver never aborts on it.
					logger.Warn("%s: property %s.%s: %v", filename, yd.Name, yp.Name, err)
				}
				p.Type = n
			}
			d.Properties = append(d.Properties, p)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func init() {
	Register("yaml", yamlFrontend{})
	Register("json", yamlFrontend{})
}
