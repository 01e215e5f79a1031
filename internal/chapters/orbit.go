package chapters

import (
	"math/rand/v2"
	"time"

	"glbasics/internal/app"
	"glbasics/internal/geometry"
	"glbasics/internal/material"
	"glbasics/internal/scene"
)

const (
	triangleCount  = 50
	triangleSpread = 2
	orbitDamping   = 0.01
)

// seed feeds the random triangles; tests pin it.
var seed = func() uint64 { return uint64(time.Now().UnixNano()) }

func updateControls(ctrl interface{ Update() bool }) app.FrameFunc {
	return func(*app.Context, time.Duration) { ctrl.Update() }
}

func cameras(ctx *app.Context) (app.FrameFunc, error) {
	mesh := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal())
	ctx.Scene.Add(mesh)

	o := orbit(ctx, mesh.Position, orbitDamping)
	o.AutoRotate = true
	return updateControls(o), nil
}

func geometries(ctx *app.Context) (app.FrameFunc, error) {
	rng := rand.New(rand.NewPCG(seed(), 0))
	mat := material.NewNormal()
	mat.Wireframe = true
	mesh := scene.NewMesh(geometry.NewRandomTriangles(triangleCount, triangleSpread, rng), mat)
	ctx.Scene.Add(mesh)

	return updateControls(orbit(ctx, mesh.Position, orbitDamping)), nil
}
