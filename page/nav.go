package page

// ActiveClass marks the open navigation menu and its toggle.
const ActiveClass = "active"

// Nav opens and closes the navigation menu.
type Nav struct {
	doc    *Document
	toggle *Element
	menu   *Element
	links  []*Element
}

func setupNav(doc *Document) (*Nav, error) {
	toggle := doc.First("nav-toggle")
	if toggle == nil {
		return nil, missing(".nav-toggle")
	}
	menu := doc.First("nav-menu")
	if menu == nil {
		return nil, missing(".nav-menu")
	}
	return &Nav{
		doc:    doc,
		toggle: toggle,
		menu:   menu,
		links:  doc.ByClass("nav-link"),
	}, nil
}

func (n *Nav) name() string { return "nav" }

// Open reports whether the menu is showing.
func (n *Nav) Open() bool {
	return n.menu.HasClass(ActiveClass)
}

func (n *Nav) handle(ev Event) {
	click, ok := ev.(Click)
	if !ok {
		return
	}
	target := click.Target

	if n.doc.Contains(n.toggle, target) {
		n.toggle.ToggleClass(ActiveClass)
		n.menu.ToggleClass(ActiveClass)
		return
	}
	for _, link := range n.links {
		if n.doc.Contains(link, target) {
			n.close()
			return
		}
	}
	if !n.doc.Contains(n.menu, target) {
		n.close()
	}
}

func (n *Nav) close() {
	n.toggle.RemoveClass(ActiveClass)
	n.menu.RemoveClass(ActiveClass)
}
