// Package debugui is a small tweak panel: controllers bound to variables,
// grouped into collapsible folders and drawn as a screen-space overlay.
package debugui

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color controller is given a value that
// is not a hex color.
var ErrInvalidColor = errors.New("invalid color")

// Kind is the type of value a controller edits.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindColor
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindFunc:
		return "func"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Panel is the root folder plus visibility.
type Panel struct {
	Folder
	hidden bool
}

// New returns an empty, visible panel.
func New(title string) *Panel {
	return &Panel{Folder: Folder{Title: title}}
}

// Show sets the panel visibility.
func (p *Panel) Show(visible bool) { p.hidden = !visible }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return !p.hidden }

// Folder groups controllers and nested folders under a title.
type Folder struct {
	Title  string
	Closed bool
	items  []any // *Controller or *Folder
}

// AddFolder appends an open subfolder.
func (f *Folder) AddFolder(title string) *Folder {
	sub := &Folder{Title: title}
	f.items = append(f.items, sub)
	return sub
}

// Open expands or collapses the folder.
func (f *Folder) Open(open bool) *Folder {
	f.Closed = !open
	return f
}

// Controllers returns the direct controllers of f in insertion order.
func (f *Folder) Controllers() []*Controller {
	var out []*Controller
	for _, it := range f.items {
		if c, ok := it.(*Controller); ok {
			out = append(out, c)
		}
	}
	return out
}

// Folders returns the direct subfolders of f in insertion order.
func (f *Folder) Folders() []*Folder {
	var out []*Folder
	for _, it := range f.items {
		if sub, ok := it.(*Folder); ok {
			out = append(out, sub)
		}
	}
	return out
}

// Find returns the first controller named name, searching depth first.
func (f *Folder) Find(name string) (*Controller, bool) {
	for _, it := range f.items {
		switch it := it.(type) {
		case *Controller:
			if it.Label() == name {
				return it, true
			}
		case *Folder:
			if c, ok := it.Find(name); ok {
				return c, true
			}
		}
	}
	return nil, false
}

func (f *Folder) add(c *Controller) *Controller {
	f.items = append(f.items, c)
	return c
}

// AddFloat binds a number slider over [min, max] snapped to step.
func (f *Folder) AddFloat(ptr *float32, min, max, step float64) *Controller {
	c := &Controller{kind: KindFloat, f: ptr}
	c.Min(min).Max(max).Step(step)
	return f.add(c)
}

// AddInt binds an integer. Without Min and Max it is unbounded.
func (f *Folder) AddInt(ptr *int) *Controller {
	return f.add(&Controller{kind: KindInt, i: ptr, step: 1, hasStep: true})
}

// AddBool binds a checkbox.
func (f *Folder) AddBool(ptr *bool) *Controller {
	return f.add(&Controller{kind: KindBool, b: ptr})
}

// AddColor binds a hex color string such as "#90b4ff".
func (f *Folder) AddColor(ptr *string) *Controller {
	return f.add(&Controller{kind: KindColor, s: ptr})
}

// AddFunc adds a button that calls fn.
func (f *Folder) AddFunc(fn func()) *Controller {
	return f.add(&Controller{kind: KindFunc, fn: fn})
}

// Controller edits one bound value. Setters return the controller so calls
// can be chained.
type Controller struct {
	kind Kind
	name string

	f  *float32
	i  *int
	b  *bool
	s  *string
	fn func()

	min, max, step          float64
	hasMin, hasMax, hasStep bool

	onChange       func()
	onFinishChange func()
	dirty          bool // changed since the last finish

	disabled bool
	hidden   bool
}

func (c *Controller) Kind() Kind { return c.kind }

// Name sets the label.
func (c *Controller) Name(name string) *Controller {
	c.name = name
	return c
}

// Label is the name, or the kind when no name was set.
func (c *Controller) Label() string {
	if c.name == "" {
		return c.kind.String()
	}
	return c.name
}

func (c *Controller) Min(v float64) *Controller {
	c.min, c.hasMin = v, true
	return c
}

func (c *Controller) Max(v float64) *Controller {
	c.max, c.hasMax = v, true
	return c
}

// Step sets the snapping increment; zero or less disables snapping.
func (c *Controller) Step(v float64) *Controller {
	c.step, c.hasStep = v, v > 0
	return c
}

// Range returns the bounds and whether both are set.
func (c *Controller) Range() (min, max float64, ok bool) {
	return c.min, c.max, c.hasMin && c.hasMax
}

// Increment is the step, or a hundredth of the range when no step is set.
func (c *Controller) Increment() float64 {
	if c.hasStep {
		return c.step
	}
	if c.hasMin && c.hasMax {
		return (c.max - c.min) / 100
	}
	return 0.1
}

// OnChange registers fn to run after every change of the bound value.
func (c *Controller) OnChange(fn func()) *Controller {
	c.onChange = fn
	return c
}

// OnFinishChange registers fn to run when an interaction that changed the
// value ends.
func (c *Controller) OnFinishChange(fn func()) *Controller {
	c.onFinishChange = fn
	return c
}

// Disable stops the panel from editing the value. Setters still work.
func (c *Controller) Disable(disabled bool) *Controller {
	c.disabled = disabled
	return c
}

func (c *Controller) Disabled() bool { return c.disabled }

// Hide removes the row from the panel.
func (c *Controller) Hide(hidden bool) *Controller {
	c.hidden = hidden
	return c
}

func (c *Controller) Hidden() bool { return c.hidden }

// Value returns the number held by a float or int controller.
func (c *Controller) Value() float64 {
	switch c.kind {
	case KindFloat:
		return float64(*c.f)
	case KindInt:
		return float64(*c.i)
	}
	return 0
}

// SetValue clamps v to the bounds, snaps it to the step and stores it.
// It reports whether the stored value changed.
func (c *Controller) SetValue(v float64) bool {
	if c.kind != KindFloat && c.kind != KindInt {
		return false
	}
	v = c.normalize(v)
	switch c.kind {
	case KindFloat:
		nv := float32(v)
		if nv == *c.f {
			return false
		}
		*c.f = nv
	case KindInt:
		nv := int(math.Round(v))
		if nv == *c.i {
			return false
		}
		*c.i = nv
	}
	c.changed()
	return true
}

func (c *Controller) normalize(v float64) float64 {
	if c.hasStep {
		v = math.Round(v/c.step) * c.step
	}
	if c.hasMin && v < c.min {
		v = c.min
	}
	if c.hasMax && v > c.max {
		v = c.max
	}
	return v
}

// Bool returns the value of a bool controller.
func (c *Controller) Bool() bool {
	return c.kind == KindBool && *c.b
}

// SetBool stores v and reports whether it changed.
func (c *Controller) SetBool(v bool) bool {
	if c.kind != KindBool || *c.b == v {
		return false
	}
	*c.b = v
	c.changed()
	return true
}

// Color returns the bound hex string.
func (c *Controller) Color() string {
	if c.kind != KindColor {
		return ""
	}
	return *c.s
}

// SetColor validates hex and stores it in "#rrggbb" form. Invalid input
// leaves the value unchanged.
func (c *Controller) SetColor(hex string) (bool, error) {
	if c.kind != KindColor {
		return false, fmt.Errorf("set color on %s controller %q", c.kind, c.Label())
	}
	col, err := parseHex(hex)
	if err != nil {
		return false, err
	}
	return c.storeColor(col), nil
}

func (c *Controller) storeColor(col colorful.Color) bool {
	hex := col.Clamped().Hex()
	if hex == *c.s {
		return false
	}
	*c.s = hex
	c.changed()
	return true
}

func parseHex(hex string) (colorful.Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = "#" + string([]byte{hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return col, nil
}

// Call runs a func controller's function.
func (c *Controller) Call() {
	if c.kind == KindFunc && c.fn != nil {
		c.fn()
	}
}

// Finish ends an interaction, running OnFinishChange if the value changed
// since the last Finish.
func (c *Controller) Finish() {
	if !c.dirty {
		return
	}
	c.dirty = false
	if c.onFinishChange != nil {
		c.onFinishChange()
	}
}

func (c *Controller) changed() {
	c.dirty = true
	if c.onChange != nil {
		c.onChange()
	}
}
