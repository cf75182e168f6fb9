package page

import (
	"math/rand"
	"testing"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// newController builds a controller over a 1280x800 viewport.
func newController(t *testing.T, doc *Document) *Controller {
	t.Helper()
	cam := camera.New(1280, 800, doc.Width, doc.Height)
	c, err := New(doc, testConfig(t), cam, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func loadController(t *testing.T, layout string) *Controller {
	t.Helper()
	doc, err := LoadLayout(layout)
	if err != nil {
		t.Fatalf("LoadLayout(%q): %v", layout, err)
	}
	return newController(t, doc)
}

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseLayout([]byte(src))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	return doc
}

// click dispatches a click at a screen point, hit-testing the target like the driver does.
func click(c *Controller, x, y float32) {
	pt := geom.V(x, y)
	c.Dispatch(Click{Target: c.Document().HitTest(pt, c.Camera()), Point: pt})
}

// clickOn dispatches a click centered on e.
func clickOn(c *Controller, e *Element) {
	c.Dispatch(Click{Target: e, Point: e.Bounds.Center()})
}
