package chapters

import (
	"time"

	"glbasics/internal/app"
	"glbasics/internal/geometry"
	"glbasics/internal/material"
	"glbasics/internal/scene"
	"glbasics/internal/tween"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	red   = colorful.Color{R: 1}
	green = colorful.Color{G: 1}
	blue  = colorful.Color{B: 1}
)

func firstProject(ctx *app.Context) (app.FrameFunc, error) {
	mesh := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewBasic(red))
	ctx.Scene.Add(mesh)
	return nil, nil
}

func transformObjects(ctx *app.Context) (app.FrameFunc, error) {
	group := scene.NewGroup()
	ctx.Scene.Add(group)

	box := geometry.NewBox(1, 1, 1)
	r := scene.NewMesh(box, material.NewBasic(red))
	g := scene.NewMesh(box, material.NewBasic(green))
	b := scene.NewMesh(box, material.NewBasic(blue))
	r.Position[0] = -2
	b.Position[0] = 2
	group.Add(r, g, b)

	group.Position[2] = -2
	group.Scale[1] = 2
	// a full turn: rotated, but indistinguishable from no rotation
	group.Rotation[1] = 2 * math32.Pi

	ctx.Camera.LookAt(group.Position)
	group.Position = group.Position.Normalize()

	ctx.Log.Info("distance from camera to group", "distance", ctx.Camera.Position.Sub(group.Position).Len())
	ctx.Log.Info("distance from camera to the center", "distance", ctx.Camera.Position.Len())

	ctx.Scene.Add(scene.NewAxesHelper(1))
	return nil, nil
}

func animations(ctx *app.Context) (app.FrameFunc, error) {
	mesh := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal())
	ctx.Scene.Add(mesh)

	z := &mesh.Position[2]
	ctx.Tweens.To(tween.Props{z: -5}, tween.Vars{Duration: 3 * time.Second, Delay: time.Second})
	ctx.Tweens.To(tween.Props{z: 0}, tween.Vars{Duration: 3 * time.Second, Delay: 4 * time.Second})

	return func(_ *app.Context, elapsed time.Duration) {
		t := float32(elapsed.Seconds())
		mesh.Rotation[0] = t
		mesh.Rotation[1] = t
	}, nil
}
