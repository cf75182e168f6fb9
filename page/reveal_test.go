package page

import (
	"math"
	"testing"
	"time"
)

func TestRevealOnScroll(t *testing.T) {
	c := loadController(t, "home")
	r := c.Reveal()
	btns := c.Document().ByClass("project-btn")
	first := btns[0] // y 1220..1400

	for _, b := range btns {
		if b.HasClass("animate-in") {
			t.Fatalf("%s revealed before scrolling", b.ID)
		}
	}

	// Root bottom = scroll + 800 - 50; 10/180 of the button is inside
	c.Dispatch(Scroll{Y: 480})
	if r.Revealed(first) {
		t.Errorf("revealed below threshold, ratio %v", r.Ratio(first))
	}

	// 20/180 is past the 0.1 threshold
	c.Dispatch(Scroll{Y: 490})
	if !r.Revealed(first) || !first.HasClass("animate-in") {
		t.Errorf("not revealed at ratio %v", r.Ratio(first))
	}
	if r.Revealed(btns[2]) {
		t.Error("lower button revealed early")
	}

	// Never removed
	c.Dispatch(Scroll{Y: 0})
	if !first.HasClass("animate-in") {
		t.Error("reveal class removed after scrolling away")
	}

	c.Dispatch(Scroll{Y: 1600})
	c.Dispatch(Scroll{Y: 0})
	n := 0
	for _, cls := range first.Classes {
		if cls == "animate-in" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("reveal class added %d times", n)
	}
}

func TestRevealRootMargin(t *testing.T) {
	c := loadController(t, "home")
	r := c.Reveal()
	c.Dispatch(Scroll{Y: 400})

	root := r.Root()
	if root.Y != 400 || root.H != 750 {
		t.Errorf("root = %v, want y 400 h 750", root)
	}
}

func TestRevealFade(t *testing.T) {
	c := loadController(t, "home")
	r := c.Reveal()
	first := c.Document().First("project-btn")

	if r.Opacity(first, 0) != 0 || r.Offset(first, 0) != 30 {
		t.Errorf("unrevealed: opacity %v offset %v", r.Opacity(first, 0), r.Offset(first, 0))
	}

	c.Frame(time.Second)
	c.Dispatch(Scroll{Y: 600})

	at := time.Second + 300*time.Millisecond
	if got := r.Opacity(first, at); math.Abs(float64(got-0.5)) > 1e-5 {
		t.Errorf("opacity halfway = %v, want 0.5", got)
	}
	if got := r.Offset(first, at); math.Abs(float64(got-15)) > 1e-4 {
		t.Errorf("offset halfway = %v, want 15", got)
	}
	if got := r.Opacity(first, 5*time.Second); got != 1 {
		t.Errorf("opacity after fade = %v, want 1", got)
	}
}

func TestRevealVisibleAtSetup(t *testing.T) {
	c := loadController(t, "about")
	// First skill row sits at 700..1000; 50px is inside the root
	first := c.Document().First("skill-category")
	if !first.HasClass("animate-in") {
		t.Errorf("visible target not revealed at setup, ratio %v", c.Reveal().Ratio(first))
	}
}

func TestRevealOnFrame(t *testing.T) {
	c := loadController(t, "home")
	first := c.Document().First("project-btn")

	// Camera moved without a Scroll event; the next frame observes it
	c.Camera().ScrollTo(800)
	c.Frame(2 * time.Second)
	if !first.HasClass("animate-in") {
		t.Error("frame did not observe the new scroll position")
	}
}
