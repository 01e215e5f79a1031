// Package chapters holds the tutorial chapters. Each one populates the
// bootstrapped scene and returns the function run before every draw.
package chapters

import (
	"errors"
	"fmt"
	"slices"

	"glbasics/internal/app"
	"glbasics/internal/controls"
	"glbasics/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownChapter is returned by Lookup for names not in the registry.
var ErrUnknownChapter = errors.New("unknown chapter")

// Chapter is one runnable lesson.
type Chapter struct {
	Name    string
	Summary string
	// Setup adds the chapter's objects and controllers to ctx. A nil frame
	// function means the scene is drawn unchanged every frame.
	Setup func(ctx *app.Context) (app.FrameFunc, error)
}

var registry = []Chapter{
	{"first-project", "red box, single draw", firstProject},
	{"transform-objects", "group of three cubes, position, scale, rotation, lookAt", transformObjects},
	{"animations", "time-driven rotation and two scheduled tweens", animations},
	{"cameras", "damped auto-rotating orbit controls", cameras},
	{"geometries", "50 random triangles in a buffer geometry", geometries},
	{"debug-ui", "tweak panel bound to the cube", debugUI},
}

// All returns the chapters in course order.
func All() []Chapter {
	return slices.Clone(registry)
}

// Lookup returns the chapter called name.
func Lookup(name string) (Chapter, error) {
	i := slices.IndexFunc(registry, func(c Chapter) bool { return c.Name == name })
	if i < 0 {
		return Chapter{}, fmt.Errorf("%w: %q", ErrUnknownChapter, name)
	}
	return registry[i], nil
}

// orbit attaches damped orbit controls around target. R resets the view.
func orbit(ctx *app.Context, target mgl32.Vec3, damping float32) *controls.Orbit {
	o := controls.NewOrbit(ctx.Camera, target)
	o.EnableDamping = true
	o.DampingFactor = damping
	ctx.AddPointerListener(o)
	ctx.OnAction(input.ActionResetCamera, o.Reset)
	return o
}
