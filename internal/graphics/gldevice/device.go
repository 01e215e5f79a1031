// Package gldevice implements renderer.Device on OpenGL 4.1 core.
// All methods must be called on the thread owning the GL context.
package gldevice

import (
	"fmt"

	"glbasics/internal/geometry"
	"glbasics/internal/graphics/font"
	"glbasics/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// floats per vertex: position, normal, color
const stride = 9

// textPixels is the baked size of the overlay font in window units.
const textPixels = 14

type buffer struct {
	vao, vbo uint32
	count    int32
	mode     uint32
}

// Device draws into the current GL context's default framebuffer.
type Device struct {
	framebuffer func() (int, int)

	mesh *Shader
	rect *Shader
	text *Shader

	rectVAO, rectVBO uint32
	textVAO, textVBO uint32
	atlasTex         uint32
	atlas            *font.Atlas
	scratch          []float32

	buffers map[renderer.BufferID]buffer
	next    renderer.BufferID

	ortho mgl32.Mat4
}

// New initializes GL and compiles the programs. framebuffer reports the
// drawable size in device pixels.
func New(framebuffer func() (int, int)) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	d := &Device{
		framebuffer: framebuffer,
		buffers:     make(map[renderer.BufferID]buffer),
	}
	var err error
	if d.mesh, err = NewShader(meshVert, meshFrag); err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	if d.rect, err = NewShader(rectVert, rectFrag); err != nil {
		d.Close()
		return nil, fmt.Errorf("rect program: %w", err)
	}
	if d.text, err = NewShader(textVert, textFrag); err != nil {
		d.Close()
		return nil, fmt.Errorf("text program: %w", err)
	}
	if d.atlas, err = font.Bake(textPixels); err != nil {
		d.Close()
		return nil, err
	}
	d.initOverlay()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	return d, nil
}

func (d *Device) initOverlay() {
	gl.GenVertexArrays(1, &d.rectVAO)
	gl.GenBuffers(1, &d.rectVBO)
	gl.BindVertexArray(d.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.rectVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	gl.GenVertexArrays(1, &d.textVAO)
	gl.GenBuffers(1, &d.textVBO)
	gl.BindVertexArray(d.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.textVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	img := d.atlas.Image
	b := img.Bounds()
	gl.GenTextures(1, &d.atlasTex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.atlasTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// SetViewport maps the scene onto the whole framebuffer and 2D drawing onto
// width by height window units.
func (d *Device) SetViewport(width, height int, pixelRatio float32) {
	fbW, fbH := d.framebuffer()
	if fbW <= 0 || fbH <= 0 {
		fbW = int(float32(width) * pixelRatio)
		fbH = int(float32(height) * pixelRatio)
	}
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	d.ortho = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (d *Device) Clear(c colorful.Color, alpha float32) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Upload copies g into an interleaved vertex buffer.
func (d *Device) Upload(g *geometry.Geometry) (renderer.BufferID, error) {
	n := g.VertexCount()
	if n == 0 {
		return 0, fmt.Errorf("geometry %d has no vertices", g.ID())
	}
	pos, nrm, col := g.Positions(), g.Normals(), g.Colors()
	data := make([]float32, 0, n*stride)
	for i := 0; i < n; i++ {
		data = append(data, pos[i*3:i*3+3]...)
		data = appendOr(data, nrm, i)
		data = appendOr(data, col, i)
	}

	var b buffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	for attr := uint32(0); attr < 3; attr++ {
		gl.EnableVertexAttribArray(attr)
		gl.VertexAttribPointer(attr, 3, gl.FLOAT, false, stride*4, gl.PtrOffset(int(attr)*3*4))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteVertexArrays(1, &b.vao)
		return 0, fmt.Errorf("upload geometry %d: gl error 0x%x", g.ID(), e)
	}

	b.count = int32(n)
	b.mode = gl.TRIANGLES
	if g.Kind() == geometry.Lines {
		b.mode = gl.LINES
	}
	d.next++
	d.buffers[d.next] = b
	return d.next, nil
}

// appendOr appends vertex i of attr, or zeros when attr is absent.
func appendOr(dst, attr []float32, i int) []float32 {
	if len(attr) >= i*3+3 {
		return append(dst, attr[i*3:i*3+3]...)
	}
	return append(dst, 0, 0, 0)
}

func (d *Device) Release(id renderer.BufferID) {
	b, ok := d.buffers[id]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	delete(d.buffers, id)
}

func (d *Device) Draw(call renderer.DrawCall) {
	b, ok := d.buffers[call.Buffer]
	if !ok {
		return
	}

	d.mesh.Use()
	d.mesh.SetMat4("uModel", call.Model)
	d.mesh.SetMat4("uView", call.View)
	d.mesh.SetMat4("uProjection", call.Projection)
	d.mesh.SetMat3("uNormalMatrix", call.View.Mul4(call.Model).Mat3().Inv().Transpose())
	d.mesh.SetInt("uShading", int32(call.Shading))
	d.mesh.SetVec3("uColor", mgl32.Vec3{float32(call.Color.R), float32(call.Color.G), float32(call.Color.B)})
	d.mesh.SetFloat("uOpacity", call.Opacity)

	blend := call.Opacity < 1
	if blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	// wireframes show every edge, including back faces
	cull := b.mode == gl.TRIANGLES && !call.Wireframe
	if cull {
		gl.Enable(gl.CULL_FACE)
	}
	if call.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(b.mode, 0, b.count)
	gl.BindVertexArray(0)

	if call.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	if cull {
		gl.Disable(gl.CULL_FACE)
	}
	if blend {
		gl.Disable(gl.BLEND)
	}
}

func (d *Device) begin2D() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) end2D() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// FillRect draws a screen-space rectangle (window units, top-left origin).
func (d *Device) FillRect(x, y, w, h float32, c colorful.Color, alpha float32) {
	verts := [12]float32{
		x, y,
		x + w, y,
		x + w, y + h,
		x, y,
		x + w, y + h,
		x, y + h,
	}
	d.begin2D()
	d.rect.Use()
	d.rect.SetMat4("uProjection", d.ortho)
	d.rect.SetVec4("uColor", mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), alpha})
	gl.BindVertexArray(d.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.rectVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	d.end2D()
}

// DrawText draws text with its line box's top-left corner at (x, y).
func (d *Device) DrawText(text string, x, y, scale float32, c colorful.Color) {
	d.scratch = d.atlas.Quads(d.scratch[:0], text, x, y, scale)
	if len(d.scratch) == 0 {
		return
	}
	d.begin2D()
	d.text.Use()
	d.text.SetMat4("uProjection", d.ortho)
	d.text.SetVec3("uColor", mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)})
	d.text.SetInt("uAtlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.atlasTex)
	gl.BindVertexArray(d.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.textVBO)
	// orphan the buffer before refilling it
	size := len(d.scratch) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(d.scratch))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(d.scratch)/4))
	gl.BindVertexArray(0)
	d.end2D()
}

func (d *Device) MeasureText(text string, scale float32) (float32, float32) {
	return d.atlas.Measure(text, scale)
}

// Close deletes every GL object the device created.
func (d *Device) Close() {
	for id := range d.buffers {
		d.Release(id)
	}
	for _, s := range []*Shader{d.mesh, d.rect, d.text} {
		if s != nil {
			s.Delete()
		}
	}
	if d.rectVAO != 0 {
		gl.DeleteVertexArrays(1, &d.rectVAO)
		gl.DeleteBuffers(1, &d.rectVBO)
	}
	if d.textVAO != 0 {
		gl.DeleteVertexArrays(1, &d.textVAO)
		gl.DeleteBuffers(1, &d.textVBO)
	}
	if d.atlasTex != 0 {
		gl.DeleteTextures(1, &d.atlasTex)
	}
}

var _ renderer.Device = (*Device)(nil)
