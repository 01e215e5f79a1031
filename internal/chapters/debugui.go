package chapters

import (
	"fmt"

	"glbasics/internal/app"
	"glbasics/internal/debugui"
	"glbasics/internal/geometry"
	"glbasics/internal/input"
	"glbasics/internal/material"
	"glbasics/internal/scene"
	"glbasics/internal/tween"

	"github.com/chewxy/math32"
)

// debugParams are the values the panel edits that live outside the scene.
type debugParams struct {
	Color       string
	Subdivision int
	Spin        func()
}

func debugUI(ctx *app.Context) (app.FrameFunc, error) {
	params := &debugParams{Color: "#90b4ff", Subdivision: 1}

	mat, err := material.NewBasicHex(params.Color)
	if err != nil {
		return nil, err
	}
	mesh := scene.NewMesh(geometry.NewBox(1, 1, 1), mat)
	ctx.Scene.Add(mesh)

	params.Spin = func() {
		ry := &mesh.Rotation[1]
		ctx.Tweens.To(tween.Props{ry: *ry + 2*math32.Pi}, tween.Vars{})
	}

	panel := debugui.New("Controls")
	tweaks := panel.AddFolder("Cube Tweaks")
	tweaks.AddFloat(&mesh.Position[1], -3, 3, 0.01).Name("elevation")
	tweaks.AddInt(&params.Subdivision).Min(1).Max(20).Step(1).
		OnChange(func() {
			n := params.Subdivision
			mesh.SetGeometry(geometry.NewSegmentedBox(1, 1, 1, n, n, n))
		}).
		Name("cube subdivision")
	tweaks.AddBool(&mesh.Visible).Name("show cube?")
	tweaks.AddBool(&mat.Wireframe).Name("show wireframe?")
	tweaks.AddColor(&params.Color).
		OnChange(func() {
			if err := mat.SetHex(params.Color); err != nil {
				ctx.Log.Warn("cube color", "err", err)
			}
		}).
		Name("cube color")
	tweaks.AddFunc(params.Spin).Name("Spin Cube!")

	o := orbit(ctx, mesh.Position, orbitDamping)

	// added after the controls so clicks on the panel never start an orbit
	view := debugui.NewView(panel)
	if err := ctx.Renderer.AddOverlay(view); err != nil {
		return nil, fmt.Errorf("debug panel: %w", err)
	}
	ctx.AddPointerListener(view)
	ctx.OnAction(input.ActionTogglePanel, view.Toggle)

	return updateControls(o), nil
}
