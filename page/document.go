// Package page drives the animated effects of the portfolio pages: navigation,
// floating background particles, the track drawing animation, the photo lightbox
// and scroll reveal.
package page

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/geom"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

// Display values.
const (
	DisplayDefault = ""
	DisplayBlock   = "block"
	DisplayNone    = "none"
)

// Element is one node of a page.
type Element struct {
	ID      string
	Classes []string
	Parent  string    // ID of the parent element, empty at the root
	Bounds  geom.Rect // Page coordinates, or screen coordinates when Fixed
	Fixed   bool      // Positioned against the viewport instead of the page
	Src     string
	Text    string
	Display string
	Path    string // SVG path data, relative to the parent's top-left
	Attrs   map[string]string
}

// HasClass reports whether the element carries class c.
func (e *Element) HasClass(c string) bool {
	return slices.Contains(e.Classes, c)
}

// AddClass adds c if it is not already present.
func (e *Element) AddClass(c string) {
	if !e.HasClass(c) {
		e.Classes = append(e.Classes, c)
	}
}

// RemoveClass removes c if present.
func (e *Element) RemoveClass(c string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(x string) bool { return x == c })
}

// ToggleClass flips c and returns whether it is now present.
func (e *Element) ToggleClass(c string) bool {
	if e.HasClass(c) {
		e.RemoveClass(c)
		return false
	}
	e.AddClass(c)
	return true
}

// Attr returns the named attribute, or "" if unset.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Document is an ordered element tree. Later elements draw above earlier ones.
type Document struct {
	Title  string
	Width  float32
	Height float32

	elements []*Element
	byID     map[string]*Element
}

// Elements returns every element in declaration order.
func (d *Document) Elements() []*Element {
	return d.elements
}

// ByID returns the element with the given ID, or nil.
func (d *Document) ByID(id string) *Element {
	return d.byID[id]
}

// ByClass returns every element carrying class c, in declaration order.
func (d *Document) ByClass(c string) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.HasClass(c) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first element carrying class c, or nil.
func (d *Document) First(c string) *Element {
	for _, e := range d.elements {
		if e.HasClass(c) {
			return e
		}
	}
	return nil
}

// ParentOf returns the parent of e, or nil at the root.
func (d *Document) ParentOf(e *Element) *Element {
	if e == nil || e.Parent == "" {
		return nil
	}
	return d.byID[e.Parent]
}

// Contains reports whether node is ancestor itself or one of its descendants.
func (d *Document) Contains(ancestor, node *Element) bool {
	if ancestor == nil {
		return false
	}
	for n := node; n != nil; n = d.ParentOf(n) {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Displayed reports whether e and all of its ancestors are displayed.
func (d *Document) Displayed(e *Element) bool {
	for n := e; n != nil; n = d.ParentOf(n) {
		if n.Display == DisplayNone {
			return false
		}
	}
	return true
}

// HitTest returns the topmost displayed element under a screen point, or nil.
// Fixed elements sit above the page and are tested at the screen point; page
// elements are tested at the point cam maps it to. Elements with
// pointer-events "none" are never hit.
func (d *Document) HitTest(screen geom.Vec2, cam *camera.Camera) *Element {
	if e := d.hit(screen, true); e != nil {
		return e
	}
	return d.hit(geom.V(cam.ScreenToWorld(screen.X, screen.Y)), false)
}

func (d *Document) hit(pt geom.Vec2, fixed bool) *Element {
	for i := len(d.elements) - 1; i >= 0; i-- {
		e := d.elements[i]
		if e.Fixed != fixed || e.Attr("pointer-events") == "none" {
			continue
		}
		if e.Bounds.Contains(pt) && d.Displayed(e) {
			return e
		}
	}
	return nil
}

// layoutFile is the YAML form of a document.
type layoutFile struct {
	Title    string       `yaml:"title"`
	Width    float32      `yaml:"width"`
	Height   float32      `yaml:"height"`
	Elements []layoutNode `yaml:"elements"`
}

type layoutNode struct {
	ID       string            `yaml:"id"`
	Class    string            `yaml:"class"` // Space separated, as in HTML
	Rect     []float32         `yaml:"rect"`  // x, y, w, h
	Fixed    bool              `yaml:"fixed"`
	Src      string            `yaml:"src"`
	Text     string            `yaml:"text"`
	Display  string            `yaml:"display"`
	Path     string            `yaml:"path"`
	Attrs    map[string]string `yaml:"attrs"`
	Children []layoutNode      `yaml:"children"`
}

// Layouts returns the names of the embedded layouts.
func Layouts() []string {
	entries, err := layoutFS.ReadDir("layouts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return names
}

// LoadLayout parses the embedded layout with the given name.
func LoadLayout(name string) (*Document, error) {
	data, err := layoutFS.ReadFile("layouts/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("loading layout %q: %w", name, err)
	}
	doc, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	return doc, nil
}

// ParseLayout builds a document from YAML layout data.
func ParseLayout(data []byte) (*Document, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	doc := &Document{
		Title:  lf.Title,
		Width:  lf.Width,
		Height: lf.Height,
		byID:   make(map[string]*Element),
	}
	for i := range lf.Elements {
		if err := doc.add(&lf.Elements[i], "", false); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) add(n *layoutNode, parent string, fixed bool) error {
	e := &Element{
		ID:      n.ID,
		Classes: strings.Fields(n.Class),
		Parent:  parent,
		Fixed:   fixed || n.Fixed,
		Src:     n.Src,
		Text:    n.Text,
		Display: n.Display,
		Path:    n.Path,
		Attrs:   n.Attrs,
	}

	switch len(n.Rect) {
	case 0:
	case 4:
		e.Bounds = geom.R(n.Rect[0], n.Rect[1], n.Rect[2], n.Rect[3])
	default:
		return fmt.Errorf("element %q: rect needs 4 values, got %d", n.ID, len(n.Rect))
	}

	if e.ID == "" {
		// Anonymous elements still need an ID for parent links
		prefix := "el"
		if len(e.Classes) > 0 {
			prefix = e.Classes[0]
		}
		e.ID = fmt.Sprintf("%s-%d", prefix, len(d.elements))
	}
	if _, dup := d.byID[e.ID]; dup {
		return fmt.Errorf("duplicate element id %q", e.ID)
	}

	d.elements = append(d.elements, e)
	d.byID[e.ID] = e

	for i := range n.Children {
		if err := d.add(&n.Children[i], e.ID, e.Fixed); err != nil {
			return err
		}
	}
	return nil
}
