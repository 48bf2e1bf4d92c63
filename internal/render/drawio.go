package render

import (
	"strconv"
	"strings"

	"erdgen/internal/model"
)

// drawioGenerator emits a draw.io mxfile document. Cell ids are assigned from
// a per-call counter in a fixed order (roots, then each entity container
// followed by its property rows, then edges); consumers rely on that ordering
// for reproducible files.
type drawioGenerator struct{}

// Fixed layout figures; the per-row count and spacings come from Options.
const (
	drawioMargin       = 40
	drawioEntityWidth  = 200
	drawioHeaderHeight = 30
	drawioRowHeight    = 26
)

const (
	drawioEntityStyle = "swimlane;fontStyle=1;childLayout=stackLayout;horizontal=1;startSize=30;horizontalStack=0;resizeParent=1;resizeParentMax=0;collapsible=1;marginBottom=0;"
	drawioRowStyle    = "text;strokeColor=none;fillColor=none;align=left;verticalAlign=middle;spacingLeft=4;spacingRight=4;overflow=hidden;rotatable=0;points=[[0,0.5],[1,0.5]];portConstraint=eastwest;"
	drawioPKRowStyle  = "text;strokeColor=#82b366;fillColor=#d5e8d4;align=left;verticalAlign=middle;spacingLeft=4;spacingRight=4;overflow=hidden;rotatable=0;points=[[0,0.5],[1,0.5]];portConstraint=eastwest;"
	drawioEdgeStyle   = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;"
)

// Arrow shapes per cardinality side.
var (
	drawioStartArrow = map[string]string{
		"one":         "none",
		"zero-or-one": "oval",
		"many":        "ERmany",
	}
	drawioEndArrow = map[string]string{
		"one":          "ERone",
		"zero-or-one":  "ERoneToMany",
		"many":         "ERmany",
		"zero-or-more": "ERmany",
	}
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// drawioCtx is the call-scoped id counter and output buffer. Building it
// fresh per Generate call keeps concurrent generations independent.
type drawioCtx struct {
	b      strings.Builder
	nextID int
}

func (c *drawioCtx) id() string {
	s := strconv.Itoa(c.nextID)
	c.nextID++
	return s
}

func (drawioGenerator) Generate(d model.ERDiagram, opts Options) string {
	perRow := opts.EntitiesPerRow
	if perRow <= 0 {
		perRow = DefaultOptions().EntitiesPerRow
	}
	hSpacing := opts.HSpacing
	if hSpacing <= 0 {
		hSpacing = DefaultOptions().HSpacing
	}
	vSpacing := opts.VSpacing
	if vSpacing <= 0 {
		vSpacing = DefaultOptions().VSpacing
	}
	title := opts.Title
	if title == "" {
		title = "Entity Relationship Diagram"
	}

	ctx := &drawioCtx{nextID: 2}
	ctx.b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	ctx.b.WriteString(`<mxfile host="app.diagrams.net" type="device"`)
	if opts.Timestamp != "" {
		ctx.b.WriteString(` modified="` + xmlEscaper.Replace(opts.Timestamp) + `"`)
	}
	ctx.b.WriteString(">\n")
	ctx.b.WriteString(`  <diagram id="erd" name="` + xmlEscaper.Replace(title) + `">` + "\n")
	ctx.b.WriteString(`    <mxGraphModel dx="800" dy="600" grid="1" gridSize="10" guides="1" tooltips="1" connect="1" arrows="1" fold="1" page="1" pageScale="1" pageWidth="850" pageHeight="1100" math="0" shadow="0">` + "\n")
	ctx.b.WriteString("      <root>\n")
	ctx.b.WriteString(`        <mxCell id="0" />` + "\n")
	ctx.b.WriteString(`        <mxCell id="1" parent="0" />` + "\n")

	containers := make(map[string]string, len(d.Entities))
	for i, e := range d.Entities {
		x := drawioMargin + (i%perRow)*hSpacing
		y := drawioMargin + (i/perRow)*vSpacing
		height := drawioHeaderHeight + len(e.Properties)*drawioRowHeight
		cid := ctx.id()
		containers[e.Name] = cid
		ctx.b.WriteString(`        <mxCell id="` + cid + `" value="` + xmlEscaper.Replace(e.Name) +
			`" style="` + drawioEntityStyle + `" vertex="1" parent="1">` + "\n")
		ctx.b.WriteString(`          <mxGeometry x="` + strconv.Itoa(x) + `" y="` + strconv.Itoa(y) +
			`" width="` + strconv.Itoa(drawioEntityWidth) + `" height="` + strconv.Itoa(height) + `" as="geometry" />` + "\n")
		ctx.b.WriteString("        </mxCell>\n")

		for _, p := range e.Properties {
			style := drawioRowStyle
			if p.KeyType == model.PrimaryKey {
				style = drawioPKRowStyle
			}
			value := p.Name + ": " + typeDisplay(p.Type)
			if p.KeyType != "" {
				value += " " + string(p.KeyType)
			}
			// Known defect kept for compatibility: every row shares the same
			// local offset instead of stacking per row.
			ctx.b.WriteString(`        <mxCell id="` + ctx.id() + `" value="` + xmlEscaper.Replace(value) +
				`" style="` + style + `" vertex="1" parent="` + cid + `">` + "\n")
			ctx.b.WriteString(`          <mxGeometry y="` + strconv.Itoa(drawioHeaderHeight) +
				`" width="` + strconv.Itoa(drawioEntityWidth) + `" height="` + strconv.Itoa(drawioRowHeight) + `" as="geometry" />` + "\n")
			ctx.b.WriteString("        </mxCell>\n")
		}
	}

	for _, rel := range d.Relationships {
		source, ok := containers[rel.From]
		if !ok {
			continue
		}
		target, ok := containers[rel.To]
		if !ok {
			continue
		}
		style := drawioEdgeStyle +
			"startArrow=" + drawioStartArrow[rel.Cardinality.FromSide()] + ";startFill=0;" +
			"endArrow=" + drawioEndArrow[rel.Cardinality.ToSide()] + ";endFill=0;"
		ctx.b.WriteString(`        <mxCell id="` + ctx.id() + `" value="` + xmlEscaper.Replace(rel.Label) +
			`" style="` + style + `" edge="1" parent="1" source="` + source + `" target="` + target + `">` + "\n")
		ctx.b.WriteString(`          <mxGeometry relative="1" as="geometry" />` + "\n")
		ctx.b.WriteString("        </mxCell>\n")
	}

	ctx.b.WriteString("      </root>\n")
	ctx.b.WriteString("    </mxGraphModel>\n")
	ctx.b.WriteString("  </diagram>\n")
	ctx.b.WriteString("</mxfile>\n")
	return ctx.b.String()
}

func init() {
	Register("drawio", drawioGenerator{})
}
