package page

import "testing"

func TestNavToggle(t *testing.T) {
	c := loadController(t, "home")
	doc := c.Document()
	toggle, menu := doc.First("nav-toggle"), doc.First("nav-menu")
	links := doc.ByClass("nav-link")
	hero := doc.First("hero-title")

	tests := []struct {
		name   string
		clicks []*Element
		open   bool
	}{
		{"toggle opens", []*Element{toggle}, true},
		{"toggle twice closes", []*Element{toggle, toggle}, false},
		{"link closes", []*Element{toggle, links[1]}, false},
		{"inside menu stays open", []*Element{toggle, menu}, true},
		{"outside closes", []*Element{toggle, hero}, false},
		{"empty space closes", []*Element{toggle, nil}, false},
		{"outside while closed", []*Element{hero}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toggle.RemoveClass(ActiveClass)
			menu.RemoveClass(ActiveClass)

			for _, target := range tt.clicks {
				c.Dispatch(Click{Target: target})
			}
			if got := c.Nav().Open(); got != tt.open {
				t.Errorf("Open() = %v, want %v", got, tt.open)
			}
			if toggle.HasClass(ActiveClass) != tt.open {
				t.Errorf("toggle active = %v, want %v", toggle.HasClass(ActiveClass), tt.open)
			}
		})
	}
}

func TestNavToggleByHitTest(t *testing.T) {
	c := loadController(t, "about")
	toggle := c.Document().First("nav-toggle")

	// The navbar is fixed, so the toggle is hit at any scroll offset
	c.Dispatch(Scroll{Y: 400})
	click(c, toggle.Bounds.X+5, toggle.Bounds.Y+5)
	if !c.Nav().Open() {
		t.Error("clicking the toggle should open the menu")
	}
}
