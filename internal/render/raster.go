package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// labelPadding surrounds status text drawn under a board.
const labelPadding = 4

// Raster is a Canvas backed by an RGBA image.
type Raster struct {
	img *image.RGBA
}

// NewRaster returns an empty raster; call Resize before drawing.
func NewRaster() *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

// Resize replaces the image with a transparent one of the given size.
func (r *Raster) Resize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// StrokeVertical draws a one pixel wide line downward from (x, y).
func (r *Raster) StrokeVertical(x, y, length int, c core.Color) {
	rgba := c.RGBA()
	for i := 0; i < length; i++ {
		r.img.SetRGBA(x, y+i, rgba)
	}
}

// StrokeHorizontal draws a one pixel high line rightward from (x, y).
func (r *Raster) StrokeHorizontal(x, y, length int, c core.Color) {
	rgba := c.RGBA()
	for i := 0; i < length; i++ {
		r.img.SetRGBA(x+i, y, rgba)
	}
}

// FillRect fills rect, clipped to the image.
func (r *Raster) FillRect(rect core.Rect, c core.Color) {
	bounds := image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom())
	draw.Draw(r.img, bounds, image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// Image returns the backing image. It is replaced by the next Resize.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// At returns the color of one pixel.
func (r *Raster) At(x, y int) core.Color {
	p := r.img.RGBAAt(x, y)
	return core.RGB(p.R, p.G, p.B)
}

// Labeled returns a copy of the board with text written on a strip below it.
func (r *Raster) Labeled(text string, fg, bg core.Color) *image.RGBA {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Face: face}
	textW := drawer.MeasureString(text).Ceil()

	board := r.img.Bounds()
	stripH := face.Height + 2*labelPadding
	w := max(board.Dx(), textW+2*labelPadding)
	out := image.NewRGBA(image.Rect(0, 0, w, board.Dy()+stripH))

	draw.Draw(out, out.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
	draw.Draw(out, board, r.img, board.Min, draw.Src)

	drawer.Dst = out
	drawer.Src = image.NewUniform(fg.RGBA())
	baseline := board.Dy() + labelPadding + face.Ascent
	drawer.Dot = fixed.P(labelPadding, baseline)
	drawer.DrawString(text)
	return out
}

// EncodePNG writes img as PNG, enlarged scale times with nearest-neighbor
// sampling so tile edges stay sharp.
func EncodePNG(w io.Writer, img image.Image, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		img = scaled
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: cannot encode png: %w", err)
	}
	return nil
}

// Rasterize paints a board onto a fresh raster sized for it.
func (r *Renderer) Rasterize(v core.TileView, g core.Geometry) *Raster {
	raster := NewRaster()
	raster.Resize(r.CanvasSize(g))
	r.Paint(raster, v, g)
	return raster
}
