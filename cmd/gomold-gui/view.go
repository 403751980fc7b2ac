package main

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gomold/pkg/preview"
	"github.com/rs/zerolog"
)

// PreviewView shows a rendered preview of a scene. Dragging orbits the
// camera, scrolling zooms.
type PreviewView struct {
	widget.BaseWidget
	image      *canvas.Image
	scene      preview.Scene
	camera     *preview.Camera
	opts       preview.Options
	logger     zerolog.Logger
	isDragging bool
	width      float32
	height     float32
}

// NewPreviewView creates an empty preview widget
func NewPreviewView(opts preview.Options, logger zerolog.Logger) *PreviewView {
	v := &PreviewView{
		image:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		opts:   opts,
		logger: logger,
	}
	v.image.FillMode = canvas.ImageFillContain
	v.ExtendBaseWidget(v)
	return v
}

// SetScene replaces the displayed scene. A new mesh resets the camera.
func (v *PreviewView) SetScene(scene preview.Scene) {
	if scene.Mesh != v.scene.Mesh && scene.Mesh != nil {
		v.camera = preview.NewCamera(scene.Mesh.BoundingBox(), v.opts.Yaw, v.opts.Pitch)
	}
	v.scene = scene
	v.Render()
}

// Render redraws the scene at the current widget size
func (v *PreviewView) Render() {
	if v.scene.Mesh == nil || v.width < 1 || v.height < 1 {
		return
	}

	opts := v.opts
	opts.Width = int(v.width)
	opts.Height = int(v.height)
	if v.isDragging {
		opts.Supersample = 1
	}

	scene := v.scene
	scene.Camera = v.camera
	img, err := preview.Render(context.Background(), scene, opts)
	if err != nil {
		v.logger.Warn().Err(err).Msg("preview failed")
		return
	}

	v.image.Image = img
	v.image.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *PreviewView) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{view: v}
}

// Dragged orbits the camera
func (v *PreviewView) Dragged(event *fyne.DragEvent) {
	if v.camera == nil {
		return
	}
	v.isDragging = true
	v.camera.Rotate(-float64(event.Dragged.DX)*0.01, float64(event.Dragged.DY)*0.01)
	v.Render()
}

// DragEnd renders the final frame at full quality
func (v *PreviewView) DragEnd() {
	v.isDragging = false
	v.Render()
}

// Scrolled zooms the camera
func (v *PreviewView) Scrolled(event *fyne.ScrollEvent) {
	if v.camera == nil {
		return
	}
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.Render()
}

type previewRenderer struct {
	view *PreviewView
}

func (r *previewRenderer) Layout(size fyne.Size) {
	r.view.image.Resize(size)
	if size.Width != r.view.width || size.Height != r.view.height {
		r.view.width = size.Width
		r.view.height = size.Height
		r.view.Render()
	}
}

func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *previewRenderer) Refresh() {
	r.view.image.Refresh()
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.image}
}

func (r *previewRenderer) Destroy() {}
