package oled

import (
	"image"

	"github.com/BeatGlow/infoscreen/pixel"
)

type monoDisplay struct {
	baseDisplay
	halted bool
}

func (d *monoDisplay) init(config *Config) error {
	d.baseDisplay.Image = pixel.NewMonoVerticalLSBImage(config.Width, config.Height)
	d.width = config.Width
	d.height = config.Height
	return nil
}

func (d *monoDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			return err
		}
		d.halted = true
	}
	return nil
}

func (d *monoDisplay) Clear() {
	d.baseDisplay.Image.(*pixel.MonoVerticalLSBImage).Clear()
}

// Image copies m into the display buffer. Pixels outside the panel bounds
// are discarded.
func (d *monoDisplay) Image(m image.Image) error {
	var (
		buf = d.baseDisplay.Image
		r   = buf.Bounds().Intersect(m.Bounds())
	)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			buf.Set(x, y, m.At(x, y))
		}
	}
	return nil
}

func (d *monoDisplay) Show(show bool) error {
	if show {
		return d.command(ssd1xxxSetDisplayOn)
	} else {
		return d.command(ssd1xxxSetDisplayOff)
	}
}

func (d *monoDisplay) SetContrast(level uint8) error {
	return d.command(ssd1xxxSetContrast, level)
}
