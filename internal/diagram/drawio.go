// Package diagram renders a model as a draw.io class diagram.
package diagram

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"dialang/internal/model"
)

// Geometry of a class box, in draw.io units.
const (
	startHeight     = 26
	attrHeight      = 26
	separatorHeight = 8
	methodHeight    = 26
	width           = 230
	xPadding        = 15
	yPadding        = 100
	firstY          = 25
)

const (
	classStyle     = "swimlane;fontStyle=1;align=center;verticalAlign=top;childLayout=stackLayout;horizontal=1;startSize=26;horizontalStack=0;resizeParent=1;resizeParentMax=0;resizeLast=0;collapsible=1;marginBottom=0;whiteSpace=wrap;html=1;"
	memberStyle    = "text;strokeColor=none;fillColor=none;align=left;verticalAlign=top;spacingLeft=4;spacingRight=4;overflow=hidden;rotatable=0;points=[[0,0.5],[1,0.5]];portConstraint=eastwest;whiteSpace=wrap;html=1;"
	separatorStyle = "line;strokeWidth=1;fillColor=none;align=left;verticalAlign=middle;spacingTop=-1;spacingLeft=3;spacingRight=3;rotatable=0;labelPosition=right;points=[];portConstraint=eastwest;strokeColor=inherit;"
)

type mxFile struct {
	XMLName xml.Name  `xml:"mxfile"`
	Host    string    `xml:"host,attr"`
	Diagram mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	ID    string       `xml:"id,attr"`
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Cells []mxCell `xml:"root>mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    *string     `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X      int    `xml:"x,attr,omitempty"`
	Y      int    `xml:"y,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	As     string `xml:"as,attr"`
}

// builder hands out sequential cell ids and tracks the vertical cursor.
type builder struct {
	cells  []mxCell
	nextID int
	y      int
}

func cellID(n int) string { return "class-diag-" + strconv.Itoa(n) }

func newBuilder() *builder {
	empty := ""
	return &builder{
		cells: []mxCell{
			{ID: cellID(0)},
			{ID: cellID(1), Parent: cellID(0), Value: &empty},
		},
		nextID: 2,
		y:      firstY,
	}
}

func (b *builder) add(c mxCell) {
	b.cells = append(b.cells, c)
}

// addClass emits the class box followed by its member rows and moves the
// cursor below it.
func (b *builder) addClass(c *model.Class) {
	parentID := cellID(b.nextID)
	b.nextID++
	titleIdx := len(b.cells)
	b.add(mxCell{}) // filled once the height is known

	y := startHeight
	row := func(value, style string, h int) {
		v := value
		b.add(mxCell{
			ID:       cellID(b.nextID),
			Value:    &v,
			Style:    style,
			Parent:   parentID,
			Vertex:   "1",
			Geometry: &mxGeometry{Y: y, Width: width, Height: h, As: "geometry"},
		})
		b.nextID++
		y += h
	}
	for _, a := range c.Attributes {
		row(a.String(), memberStyle, attrHeight)
	}
	row("", separatorStyle, separatorHeight)
	for _, m := range c.Methods {
		row(m.Signature(), memberStyle, methodHeight)
	}
	y += startHeight - methodHeight

	name := c.Name
	b.cells[titleIdx] = mxCell{
		ID:       parentID,
		Value:    &name,
		Style:    classStyle,
		Parent:   cellID(1),
		Vertex:   "1",
		Geometry: &mxGeometry{X: xPadding, Y: b.y, Width: width, Height: y, As: "geometry"},
	}
	b.y += y + yPadding
}

// Render writes the classes of m as a draw.io document.
func Render(w io.Writer, m *model.Model) error {
	b := newBuilder()
	for _, c := range m.ClassList() {
		b.addClass(c)
	}
	doc := mxFile{
		Host: "dialang",
		Diagram: mxDiagram{
			ID:    "class-diagram",
			Name:  "Class diagram",
			Model: mxGraphModel{Cells: b.cells},
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}
