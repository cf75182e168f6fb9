package page

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/config"
)

// ErrMissingElement is returned by feature setup when the page lacks an element
// the feature needs. The feature is skipped.
var ErrMissingElement = errors.New("missing element")

func missing(selector string) error {
	return fmt.Errorf("%w: %s", ErrMissingElement, selector)
}

type feature interface {
	name() string
	handle(ev Event)
}

type animated interface {
	frame(now time.Duration)
}

// Controller owns a page and the features set up on it.
type Controller struct {
	doc *Document
	cam *camera.Camera

	nav        *Nav
	background *Background
	track      *Track
	lightbox   *Lightbox
	reveal     *Reveal

	features []feature

	// Elements the pointer is over, innermost first
	hovered []*Element
	now     time.Duration
}

// New sets up every feature whose elements are present in doc. Missing
// elements disable a feature silently; other setup failures are returned.
func New(doc *Document, cfg *config.Config, cam *camera.Camera, rng *rand.Rand) (*Controller, error) {
	c := &Controller{doc: doc, cam: cam}

	nav, err := setupNav(doc)
	if err := c.register(nav, err); err != nil {
		return nil, err
	}
	c.nav = nav

	background, err := setupBackground(doc, cfg, cam.ViewportW, cam.ViewportH, rng)
	if err := c.register(background, err); err != nil {
		return nil, err
	}
	c.background = background

	track, err := setupTrack(doc, cfg)
	if err := c.register(track, err); err != nil {
		return nil, err
	}
	c.track = track

	lightbox, err := setupLightbox(doc)
	if err := c.register(lightbox, err); err != nil {
		return nil, err
	}
	c.lightbox = lightbox

	reveal, err := setupReveal(doc, cfg, cam)
	if err := c.register(reveal, err); err != nil {
		return nil, err
	}
	c.reveal = reveal

	slog.Info("page ready", "title", doc.Title, "features", c.FeatureNames())
	return c, nil
}

// register adds f when setup succeeded. A missing element is logged and
// swallowed; any other error is returned.
func (c *Controller) register(f feature, err error) error {
	if errors.Is(err, ErrMissingElement) {
		slog.Debug("feature disabled", "reason", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("setting up page: %w", err)
	}
	c.features = append(c.features, f)
	return nil
}

// FeatureNames lists the active features in setup order.
func (c *Controller) FeatureNames() []string {
	names := make([]string, len(c.features))
	for i, f := range c.features {
		names[i] = f.name()
	}
	return names
}

// Document returns the page.
func (c *Controller) Document() *Document { return c.doc }

// Camera returns the page viewport.
func (c *Controller) Camera() *camera.Camera { return c.cam }

// Now returns the time of the last frame.
func (c *Controller) Now() time.Duration { return c.now }

// Nav returns the navigation feature, or nil if the page has none.
func (c *Controller) Nav() *Nav { return c.nav }

// Background returns the background feature, or nil.
func (c *Controller) Background() *Background { return c.background }

// Track returns the track animation, or nil.
func (c *Controller) Track() *Track { return c.track }

// Lightbox returns the lightbox, or nil.
func (c *Controller) Lightbox() *Lightbox { return c.lightbox }

// Reveal returns the scroll reveal observer, or nil.
func (c *Controller) Reveal() *Reveal { return c.reveal }

// Dispatch delivers ev to every feature. Viewport events update the camera
// first; pointer moves also produce enter and leave events.
func (c *Controller) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case Resize:
		c.cam.Resize(ev.Width, ev.Height)
	case Scroll:
		c.cam.ScrollTo(ev.Y)
	case ScrollBy:
		c.cam.ScrollBy(ev.DY)
		c.deliver(Scroll{Y: c.cam.ScrollY})
		return
	case PointerMove:
		c.updateHover(ev.Target)
	}
	c.deliver(ev)
}

func (c *Controller) deliver(ev Event) {
	for _, f := range c.features {
		f.handle(ev)
	}
}

// updateHover diffs the ancestor chain under the pointer against the previous
// one, leaving elements innermost first and entering them outermost first.
func (c *Controller) updateHover(target *Element) {
	var chain []*Element
	for e := target; e != nil; e = c.doc.ParentOf(e) {
		chain = append(chain, e)
	}

	for _, e := range c.hovered {
		if !slices.Contains(chain, e) {
			c.deliver(PointerLeave{Target: e})
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if !slices.Contains(c.hovered, chain[i]) {
			c.deliver(PointerEnter{Target: chain[i]})
		}
	}
	c.hovered = chain
}

// Hovered reports whether the pointer is over e or one of its descendants.
func (c *Controller) Hovered(e *Element) bool {
	return slices.Contains(c.hovered, e)
}

// Frame advances every animated feature to time now.
func (c *Controller) Frame(now time.Duration) {
	c.now = now
	for _, f := range c.features {
		if a, ok := f.(animated); ok {
			a.frame(now)
		}
	}
}
