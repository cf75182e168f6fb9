package page

// Lightbox shows a gallery photo full screen.
type Lightbox struct {
	doc    *Document
	box    *Element
	img    *Element
	close  *Element
	thumbs []*Element
}

func setupLightbox(doc *Document) (*Lightbox, error) {
	box := doc.ByID("lightbox")
	if box == nil {
		return nil, missing("#lightbox")
	}
	img := doc.ByID("lightbox-img")
	if img == nil {
		return nil, missing("#lightbox-img")
	}
	var closeBtn *Element
	for _, e := range doc.ByClass("close") {
		if doc.Contains(box, e) {
			closeBtn = e
			break
		}
	}
	if closeBtn == nil {
		return nil, missing(".lightbox .close")
	}
	return &Lightbox{
		doc:    doc,
		box:    box,
		img:    img,
		close:  closeBtn,
		thumbs: doc.ByClass("gallery-item"),
	}, nil
}

func (l *Lightbox) name() string { return "lightbox" }

// Open reports whether the lightbox is showing.
func (l *Lightbox) Open() bool { return l.box.Display == DisplayBlock }

// Box returns the lightbox overlay element.
func (l *Lightbox) Box() *Element { return l.box }

// Image returns the enlarged image element.
func (l *Lightbox) Image() *Element { return l.img }

func (l *Lightbox) handle(ev Event) {
	switch ev := ev.(type) {
	case Click:
		l.click(ev.Target)
	case KeyDown:
		if ev.Key == KeyEscape && l.Open() {
			l.box.Display = DisplayNone
		}
	}
}

func (l *Lightbox) click(target *Element) {
	if target == nil {
		return
	}
	for _, thumb := range l.thumbs {
		if l.doc.Contains(thumb, target) {
			l.box.Display = DisplayBlock
			l.img.Src = thumb.Src
			return
		}
	}
	if l.doc.Contains(l.close, target) {
		l.box.Display = DisplayNone
		return
	}
	if l.doc.Contains(l.box, target) && target != l.img {
		l.box.Display = DisplayNone
	}
}
