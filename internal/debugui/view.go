package debugui

import (
	"math"
	"strconv"

	"glbasics/internal/graphics/renderer"
	"glbasics/internal/input"

	"github.com/lucasb-eyer/go-colorful"
)

// Layout in window units. The panel hangs from the top-right corner.
const (
	panelWidth  = 245
	panelMargin = 15
	rowHeight   = 24
	rowPadding  = 6
	indent      = 8
	labelFrac   = 0.4
	hueSegments = 24
	textScale   = 1
)

var (
	panelBg    = mustHex("#1f1f1f")
	titleBg    = mustHex("#111111")
	folderBg   = mustHex("#2a2a2a")
	widgetBg   = mustHex("#424242")
	numberFill = mustHex("#2cc9ff")
	textColor  = mustHex("#ebebeb")
	buttonBg   = colorful.Color{R: 0.3, G: 0.3, B: 0.3}
	buttonHl   = colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	toggleOn   = colorful.Color{R: 0.2, G: 0.5, B: 0.2}
	toggleOff  = colorful.Color{R: 0.5, G: 0.2, B: 0.2}
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

type rowKind int

const (
	rowTitle rowKind = iota
	rowFolder
	rowControl
)

type row struct {
	kind   rowKind
	y      float32
	depth  int
	folder *Folder
	ctrl   *Controller
}

type rect struct{ x, y, w, h float32 }

func (r rect) contains(x, y float32) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// View draws a Panel and edits it from pointer input.
type View struct {
	panel     *Panel
	width     float32
	height    float32
	collapsed bool
	rows      []row
	hover     int

	drag       *Controller
	dragArea   rect
	dragStartX float32
	dragStartV float64
}

var (
	_ renderer.Renderable   = (*View)(nil)
	_ input.PointerListener = (*View)(nil)
)

// NewView returns an overlay for p.
func NewView(p *Panel) *View {
	return &View{panel: p, hover: -1}
}

func (v *View) Init() error { return nil }

func (v *View) Dispose() { v.drag = nil }

func (v *View) SetViewport(width, height int) {
	v.width, v.height = float32(width), float32(height)
}

// Toggle shows a hidden panel and hides a shown one.
func (v *View) Toggle() {
	v.panel.Show(!v.panel.Visible())
	v.drag = nil
	v.hover = -1
}

// Collapsed reports whether the panel is folded to its title bar.
func (v *View) Collapsed() bool { return v.collapsed }

func (v *View) left() float32 {
	return max(v.width-panelWidth-panelMargin, 0)
}

func (v *View) layout() {
	v.rows = append(v.rows[:0], row{kind: rowTitle})
	if !v.collapsed {
		v.walk(&v.panel.Folder, 0)
	}
	for i := range v.rows {
		v.rows[i].y = float32(i) * rowHeight
	}
}

func (v *View) walk(f *Folder, depth int) {
	for _, it := range f.items {
		switch it := it.(type) {
		case *Controller:
			if !it.hidden {
				v.rows = append(v.rows, row{kind: rowControl, depth: depth, ctrl: it})
			}
		case *Folder:
			v.rows = append(v.rows, row{kind: rowFolder, depth: depth, folder: it})
			if !it.Closed {
				v.walk(it, depth+1)
			}
		}
	}
}

// bounds is the panel rectangle for the current layout.
func (v *View) bounds() rect {
	return rect{v.left(), 0, panelWidth, float32(len(v.rows)) * rowHeight}
}

func (v *View) hit(x, y float32) int {
	if !v.bounds().contains(x, y) {
		return -1
	}
	i := int(y / rowHeight)
	if i >= len(v.rows) {
		return -1
	}
	return i
}

// widgetArea is the editable part of a controller row; buttons span the row.
func (v *View) widgetArea(r row) rect {
	x0 := v.left()
	if r.ctrl.kind == KindFunc {
		lx := x0 + rowPadding + float32(r.depth)*indent
		return rect{lx, r.y + 2, x0 + panelWidth - rowPadding - lx, rowHeight - 4}
	}
	wx := x0 + panelWidth*labelFrac
	return rect{wx, r.y + 2, panelWidth*(1-labelFrac) - rowPadding, rowHeight - 4}
}

// hueStrip is the right part of a color row; the rest shows the swatch.
func hueStrip(a rect) rect {
	sw := a.w * 0.5
	return rect{a.x + sw + 2, a.y, a.w - sw - 2, a.h}
}

func (v *View) Render(ctx renderer.RenderContext) {
	if !v.panel.Visible() {
		return
	}
	if ctx.Width > 0 {
		v.width, v.height = ctx.Width, ctx.Height
	}
	v.layout()
	cv := ctx.Canvas
	b := v.bounds()
	cv.FillRect(b.x, b.y, b.w, b.h, panelBg, 1)

	for i, r := range v.rows {
		switch r.kind {
		case rowTitle:
			cv.FillRect(b.x, r.y, panelWidth, rowHeight, titleBg, 1)
			v.label(cv, marker(v.collapsed)+v.panel.Title, b.x+rowPadding, r.y, panelWidth-2*rowPadding, textColor)
		case rowFolder:
			x := b.x + float32(r.depth)*indent
			cv.FillRect(x, r.y, panelWidth-(x-b.x), rowHeight, folderBg, 1)
			v.label(cv, marker(r.folder.Closed)+r.folder.Title, x+rowPadding, r.y, panelWidth-(x-b.x)-2*rowPadding, textColor)
		case rowControl:
			v.drawControl(cv, r, i == v.hover)
		}
	}
}

func marker(closed bool) string {
	if closed {
		return "+ "
	}
	return "- "
}

func (v *View) drawControl(cv renderer.Canvas2D, r row, hovered bool) {
	c := r.ctrl
	a := v.widgetArea(r)
	fg := textColor
	alpha := float32(1)
	if c.disabled {
		fg = textColor.BlendRgb(panelBg, 0.5)
		alpha = 0.5
		hovered = false
	}

	if c.kind == KindFunc {
		bg := buttonBg
		if hovered {
			bg = buttonHl
		}
		cv.FillRect(a.x, a.y, a.w, a.h, bg, alpha)
		v.centered(cv, c.Label(), a, fg)
		return
	}

	lx := v.left() + rowPadding + float32(r.depth)*indent
	v.label(cv, c.Label(), lx, r.y, a.x-lx-rowPadding, fg)

	switch c.kind {
	case KindFloat, KindInt:
		cv.FillRect(a.x, a.y, a.w, a.h, widgetBg, alpha)
		if lo, hi, ok := c.Range(); ok && hi > lo {
			frac := float32((c.Value() - lo) / (hi - lo))
			cv.FillRect(a.x, a.y, a.w*clamp01(frac), a.h, numberFill, alpha*0.6)
		}
		v.centered(cv, formatValue(c), a, fg)
	case KindBool:
		bg := toggleOff
		if c.Bool() {
			bg = toggleOn
		}
		if hovered {
			bg = colorful.Color{R: bg.R * 1.2, G: bg.G * 1.2, B: bg.B * 1.2}
		}
		cv.FillRect(a.x, a.y, a.h, a.h, bg, 0.85*alpha)
	case KindColor:
		col, err := parseHex(c.Color())
		if err != nil {
			col = widgetBg
		}
		sw := rect{a.x, a.y, a.w * 0.5, a.h}
		cv.FillRect(sw.x, sw.y, sw.w, sw.h, col, alpha)
		ink := colorful.Color{R: 1, G: 1, B: 1}
		if l, _, _ := col.Lab(); l > 0.6 {
			ink = colorful.Color{}
		}
		v.centered(cv, c.Color(), sw, ink)
		hs := hueStrip(a)
		segW := hs.w / hueSegments
		for i := range hueSegments {
			h := (float64(i) + 0.5) / hueSegments * 360
			cv.FillRect(hs.x+float32(i)*segW, hs.y, segW, hs.h, colorful.Hsv(h, 1, 1), alpha)
		}
	}
}

// label draws text vertically centered in a row, trimmed to maxW.
func (v *View) label(cv renderer.Canvas2D, text string, x, y, maxW float32, c colorful.Color) {
	text = fit(cv, text, maxW)
	_, th := cv.MeasureText(text, textScale)
	cv.DrawText(text, x, y+(rowHeight-th)/2, textScale, c)
}

func (v *View) centered(cv renderer.Canvas2D, text string, a rect, c colorful.Color) {
	text = fit(cv, text, a.w-4)
	tw, th := cv.MeasureText(text, textScale)
	cv.DrawText(text, a.x+(a.w-tw)/2, a.y+(a.h-th)/2, textScale, c)
}

func fit(cv renderer.Canvas2D, text string, maxW float32) string {
	if w, _ := cv.MeasureText(text, textScale); w <= maxW {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := string(runes) + ".."
		if w, _ := cv.MeasureText(s, textScale); w <= maxW {
			return s
		}
	}
	return ""
}

func formatValue(c *Controller) string {
	if c.kind == KindInt {
		return strconv.Itoa(int(c.Value()))
	}
	return strconv.FormatFloat(c.Value(), 'f', decimals(c.Increment()), 64)
}

// decimals is the number of fraction digits needed to show multiples of step.
func decimals(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	return min(int(math.Ceil(-math.Log10(step)-1e-9)), 6)
}

func clamp01(f float32) float32 {
	return min(max(f, 0), 1)
}

func (v *View) sync(e input.PointerEvent) {
	if e.Width > 0 {
		v.width, v.height = e.Width, e.Height
	}
	v.layout()
}

// PointerDown edits the row under the pointer. Every press inside the panel
// is consumed.
func (v *View) PointerDown(e input.PointerEvent) bool {
	if !v.panel.Visible() {
		return false
	}
	v.sync(e)
	i := v.hit(e.X, e.Y)
	if i < 0 {
		return false
	}
	if e.Button != input.ButtonLeft {
		return true
	}
	r := v.rows[i]
	switch r.kind {
	case rowTitle:
		v.collapsed = !v.collapsed
	case rowFolder:
		r.folder.Closed = !r.folder.Closed
	case rowControl:
		v.press(r, e.X, e.Y)
	}
	return true
}

func (v *View) press(r row, x, y float32) {
	c := r.ctrl
	if c.disabled {
		return
	}
	a := v.widgetArea(r)
	switch c.kind {
	case KindFunc:
		if a.contains(x, y) {
			c.Call()
		}
	case KindBool:
		if a.contains(x, y) {
			c.SetBool(!c.Bool())
			c.Finish()
		}
	case KindFloat, KindInt:
		if !a.contains(x, y) {
			return
		}
		v.drag, v.dragArea = c, a
		v.dragStartX, v.dragStartV = x, c.Value()
		v.dragTo(x)
	case KindColor:
		hs := hueStrip(a)
		if !hs.contains(x, y) {
			return
		}
		v.drag, v.dragArea = c, hs
		v.dragTo(x)
	}
}

// dragTo applies a drag position to the controller being dragged. Ranged
// numbers map the widget width onto the range, unbounded ones move one
// increment per unit, colors pick a hue.
func (v *View) dragTo(x float32) {
	c, a := v.drag, v.dragArea
	switch c.kind {
	case KindFloat, KindInt:
		if lo, hi, ok := c.Range(); ok {
			frac := float64(clamp01((x - a.x) / a.w))
			c.SetValue(lo + frac*(hi-lo))
			return
		}
		c.SetValue(v.dragStartV + float64(x-v.dragStartX)*c.Increment())
	case KindColor:
		col, err := parseHex(c.Color())
		if err != nil {
			col = colorful.Color{R: 1}
		}
		_, s, val := col.Hsv()
		if s < 0.05 {
			s, val = 1, max(val, 0.5)
		}
		h := float64(clamp01((x-a.x)/a.w)) * 359.9
		c.storeColor(colorful.Hsv(h, s, val))
	}
}

// PointerMove continues a drag, or tracks hover when idle.
func (v *View) PointerMove(e input.PointerEvent) bool {
	if v.drag != nil {
		v.dragTo(e.X)
		return true
	}
	v.hover = -1
	if !v.panel.Visible() {
		return false
	}
	v.sync(e)
	v.hover = v.hit(e.X, e.Y)
	return false
}

// PointerUp ends a drag.
func (v *View) PointerUp(input.PointerEvent) bool {
	if v.drag == nil {
		return false
	}
	v.drag.Finish()
	v.drag = nil
	return true
}

// Scroll over a number row steps its value. Scrolls over the panel never
// reach the scene.
func (v *View) Scroll(e input.ScrollEvent) bool {
	if !v.panel.Visible() {
		return false
	}
	if e.Width > 0 {
		v.width, v.height = e.Width, e.Height
	}
	v.layout()
	i := v.hit(e.X, e.Y)
	if i < 0 {
		return false
	}
	r := v.rows[i]
	if r.kind == rowControl && !r.ctrl.disabled && e.DY != 0 {
		c := r.ctrl
		if c.kind == KindFloat || c.kind == KindInt {
			dir := 1.0
			if e.DY < 0 {
				dir = -1
			}
			c.SetValue(c.Value() + dir*c.Increment())
			c.Finish()
		}
	}
	return true
}
