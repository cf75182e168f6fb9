package page

import (
	"testing"
	"time"
)

func TestBackgroundSizedToViewport(t *testing.T) {
	c := loadController(t, "home")
	bg := c.Background()

	// floor(1280*800/15000) = 68
	if got := bg.Field().Count(); got != 68 {
		t.Errorf("mote count = %d, want 68", got)
	}
	if b := bg.Canvas().Bounds; b.W != 1280 || b.H != 800 {
		t.Errorf("canvas bounds = %v", b)
	}
}

func TestBackgroundVisibilityPause(t *testing.T) {
	c := loadController(t, "home")
	bg := c.Background()

	c.Frame(16 * time.Millisecond)
	c.Frame(32 * time.Millisecond)
	if bg.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", bg.Frames())
	}

	c.Dispatch(VisibilityChange{Hidden: true})
	if !bg.Paused() {
		t.Error("hidden page should pause the background")
	}
	c.Frame(48 * time.Millisecond)
	c.Frame(64 * time.Millisecond)
	if bg.Frames() != 2 {
		t.Errorf("background advanced while hidden: %d frames", bg.Frames())
	}

	c.Dispatch(VisibilityChange{Hidden: false})
	c.Frame(80 * time.Millisecond)
	if bg.Paused() || bg.Frames() != 3 {
		t.Errorf("background did not resume: paused %v frames %d", bg.Paused(), bg.Frames())
	}
}

func TestBackgroundResize(t *testing.T) {
	c := loadController(t, "about")
	bg := c.Background()

	c.Dispatch(Resize{Width: 1920, Height: 1080})
	if got := bg.Field().Count(); got != 100 {
		t.Errorf("mote count after resize = %d, want 100", got)
	}
	w, h := bg.Field().Size()
	if w != 1920 || h != 1080 {
		t.Errorf("field size = %vx%v", w, h)
	}
	if b := bg.Canvas().Bounds; b.W != 1920 || b.H != 1080 {
		t.Errorf("canvas bounds = %v", b)
	}
}
