package oled

import (
	"fmt"

	"github.com/BeatGlow/infoscreen/pixel"
)

const (
	ssd1309DefaultWidth  = 128
	ssd1309DefaultHeight = 64
)

// The SSD1309 speaks the SSD1306 command set but has no internal charge
// pump and drives taller panels.
type ssd1309 struct {
	monoDisplay
	pageSize int
	width    int
}

// SSD1309 is a driver for the Solomon Systech SSD1309 OLED display.
func SSD1309(conn Conn, config *Config) (Display, error) {
	d := &ssd1309{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c: conn,
			},
		},
	}

	if config.Width == 0 {
		config.Width = ssd1309DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1309DefaultHeight
	}

	switch {
	case config.Width == 128 && config.Height == 32:
	case config.Width == 128 && config.Height == 64:
	default:
		return nil, fmt.Errorf("oled: SSD1309 unsupported size %dx%d", config.Width, config.Height)
	}

	d.pageSize = config.Height >> 3
	d.width = config.Width

	if err := d.monoDisplay.init(config); err != nil {
		return nil, err
	}

	if err := d.Begin(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1309) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *ssd1309) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("SSD1309 OLED %dx%d", bounds.Dx(), bounds.Dy())
}

func (d *ssd1309) Begin() (err error) {
	comPins := byte(0x12)
	if d.height == 32 {
		comPins = 0x02
	}

	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetDisplayClockDiv, 0xA0,
		ssd1xxxSetMultiplexRatio, byte(d.height-1),
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetStartLine,
		ssd1xxxSetMemoryMode, 0x00,
		ssd1xxxSetSegmentRemap,
		ssd1xxxSetComScanDec,
		ssd1xxxSetComPins, comPins,
		ssd1xxxSetPrecharge, 0x25,
		ssd1xxxSetVCOMDeselect, 0x34,
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetNormalDisplay,
	); err != nil {
		return err
	}

	if err = d.SetContrast(0x7F); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	if err = d.Show(true); err != nil {
		return
	}
	d.halted = false

	return
}

func (d *ssd1309) Refresh() (err error) {
	pix := d.baseDisplay.Image.(*pixel.MonoVerticalLSBImage).Pix
	for page := 0; page < d.pageSize; page++ {
		if err = d.command(
			ssd1xxxSetColumnAddr, 0x00, byte(d.width-1),
			ssd1xxxSetPageAddr, byte(page), byte(page),
		); err != nil {
			return
		}
		var (
			off = page * d.width
			end = off + d.width
		)
		if err := d.data(pix[off:end]...); err != nil {
			return err
		}
	}
	return nil
}
