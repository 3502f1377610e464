package screen

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/infoscreen/pixel"
)

// DrawText draws text white-on-black at (x, y) on the canvas, with (x, y)
// the top-left corner of the line; the baseline sits one ascent below y.
func (d *Display) DrawText(text string, x, y int, face font.Face) {
	drawer := &font.Drawer{
		Dst:  d.img,
		Src:  image.NewUniform(pixel.On),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Round()),
	}
	drawer.DrawString(text)
}
