package source

import (
	"fmt"
	"strings"

	"erdgen/internal/decl"
)

// ParseTypeExpr parses a type expression string into a syntax node. The
// grammar covers identifiers, generic arguments, sugared arrays, unions,
// parenthesized groups and string/number/boolean literals:
//
//	union   := postfix ("|" postfix)*
//	postfix := primary ("[" "]")*
//	primary := ident ("<" union ("," union)* ">")? | literal | "(" union ")"
func ParseTypeExpr(expr string) (*decl.TypeNode, error) {
	p := &typeParser{src: expr}
	n, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, expr)
	}
	return n, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d in type %q", c, p.pos, p.src)
	}
	p.pos++
	return nil
}

func (p *typeParser) union() (*decl.TypeNode, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}
	members := []*decl.TypeNode{first}
	for p.peek() == '|' {
		p.pos++
		m, err := p.postfix()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return decl.Union(members...), nil
}

func (p *typeParser) postfix() (*decl.TypeNode, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek() == '[' {
		p.pos++
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		n = decl.Array(n)
	}
	return n, nil
}

func (p *typeParser) primary() (*decl.TypeNode, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		n, err := p.union()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return n, nil
	case c == '\'' || c == '"':
		return p.stringLiteral(c)
	case c >= '0' && c <= '9' || c == '-':
		return p.numberLiteral()
	case isIdentByte(c):
		return p.identOrKeyword()
	case c == 0:
		return nil, fmt.Errorf("unexpected end of type %q", p.src)
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", c, p.pos, p.src)
	}
}

func (p *typeParser) stringLiteral(quote byte) (*decl.TypeNode, error) {
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != quote {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unterminated string literal in type %q", p.src)
	}
	value := p.src[start:p.pos]
	p.pos++
	return decl.Literal("string", value), nil
}

func (p *typeParser) numberLiteral() (*decl.TypeNode, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && (p.src[p.pos] == '.' || p.src[p.pos] >= '0' && p.src[p.pos] <= '9') {
		p.pos++
	}
	if p.pos == start || p.src[start:p.pos] == "-" {
		return nil, fmt.Errorf("malformed number literal in type %q", p.src)
	}
	return decl.Literal("number", p.src[start:p.pos]), nil
}

func (p *typeParser) identOrKeyword() (*decl.TypeNode, error) {
	start := p.pos
	for p.pos < len(p.src) && (isIdentByte(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "true" || name == "false" {
		return decl.Literal("boolean", name), nil
	}
	if p.peek() != '<' {
		return decl.Ident(name), nil
	}
	p.pos++
	var args []*decl.TypeNode
	for {
		a, err := p.union()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return decl.Ident(name, args...), nil
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// normalizeKind maps kind aliases to the two canonical declaration kinds.
func normalizeKind(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "interface":
		return "interface"
	case "type", "alias", "struct":
		return "type"
	default:
		return strings.ToLower(kind)
	}
}
