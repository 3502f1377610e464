// Package screen implements the display surface and the informational
// screens rendered onto it.
package screen

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/BeatGlow/infoscreen/draw"
	"github.com/BeatGlow/infoscreen/oled"
	"github.com/BeatGlow/infoscreen/pixel"
)

// DefaultScreenshotDir is where screenshots land unless a directory is
// configured explicitly.
const DefaultScreenshotDir = "./img/examples"

// Device is the driver collaborator contract. Any object with this
// capability set can sit behind a Display.
type Device interface {
	String() string

	// Begin powers on the panel.
	Begin() error

	// Clear blanks the device buffer.
	Clear()

	// Image loads a frame into the device buffer.
	Image(m image.Image) error

	// Refresh pushes the device buffer to the panel.
	Refresh() error

	// Bounds reports the panel dimensions.
	Bounds() image.Rectangle
}

// Options configure a Display.
type Options struct {
	// Driver selects the display controller by name. Unrecognized names
	// fall back to the default driver, see [oled.ModelByName].
	Driver string

	// Bus is the I²C bus number; -1 selects the first available bus.
	Bus int

	// Rotate is an optional rotation in degrees, applied to the canvas
	// right before each frame flip. Zero disables rotation.
	Rotate int

	// Screenshot enables capturing rendered frames to disk.
	Screenshot bool

	// ScreenshotDir overrides [DefaultScreenshotDir].
	ScreenshotDir string
}

// Display owns the in-memory canvas and mediates all device I/O. The
// surface dimensions never change after construction. A Display may be
// shared by many screens, but only one screen may drive it at a time.
type Display struct {
	dev           Device
	img           draw.Image
	width         int
	height        int
	rotate        int
	screenshot    bool
	screenshotDir string
	now           func() time.Time
}

// Open connects to the display over I²C and initializes it.
func Open(opts Options) (*Display, error) {
	c, err := oled.OpenI2C(&oled.I2CConfig{
		Bus:  opts.Bus,
		Addr: oled.DefaultI2CConfig.Addr,
	})
	if err != nil {
		return nil, err
	}

	model := oled.ModelByName(opts.Driver)
	log.Printf("screen: creating a %s driver", model)
	dev, err := model.Open(c, &oled.Config{})
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return New(dev, opts)
}

// New wraps an already constructed device. The device is cleared and a
// canvas matching its dimensions is allocated.
func New(dev Device, opts Options) (*Display, error) {
	d := &Display{
		dev:           dev,
		rotate:        opts.Rotate,
		screenshot:    opts.Screenshot,
		screenshotDir: opts.ScreenshotDir,
		now:           time.Now,
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}

	size := dev.Bounds().Size()
	d.width = size.X
	d.height = size.Y
	d.img = pixel.NewMonoImage(size.X, size.Y)

	return d, nil
}

// Close shuts down the underlying device when it supports closing.
func (d *Display) Close() error {
	if c, ok := d.dev.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Size reports the surface dimensions.
func (d *Display) Size() image.Point {
	return image.Pt(d.width, d.height)
}

// Clear re-initializes the device and forces a blank frame. It is safe
// to call repeatedly.
func (d *Display) Clear() error {
	if err := d.dev.Begin(); err != nil {
		return err
	}
	d.dev.Clear()
	return d.dev.Refresh()
}

// Prepare fills the canvas with the background value. It must be called
// before any draw calls for a frame.
func (d *Display) Prepare() {
	draw.Box(d.img, d.img.Bounds(), pixel.Off)
}

// Show pushes the canvas to the device and triggers the refresh. With a
// rotation configured the canvas is rotated first and the draw target
// rebound to the rotated image; a second Show in the same frame would
// compound the rotation, so callers flip once per logical frame.
func (d *Display) Show() error {
	if d.rotate != 0 {
		d.img = imaging.Rotate(d.img, float64(d.rotate), color.Black)
	}
	if err := d.dev.Image(d.img); err != nil {
		return err
	}
	return d.dev.Refresh()
}

// CaptureScreenshot writes the canvas to <dir>/<name>.png. It does
// nothing unless screenshots are enabled; write errors propagate.
func (d *Display) CaptureScreenshot(name string) error {
	if !d.screenshot {
		return nil
	}

	dir := d.screenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	path := filepath.Join(dir, strings.ToLower(name)+".png")
	log.Printf("screen: saving screenshot to %q", path)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, d.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// HumanReadableTimeNow returns the current UTC time as T[HH:MM:SS].
func (d *Display) HumanReadableTimeNow() string {
	return d.now().UTC().Format("T[15:04:05]")
}

// HumanReadableTimeSince parses an ISO 8601 timestamp and reports how
// long ago it was, e.g. "1.50h ago". The unit is minutes under an hour,
// hours under a day, days otherwise, always with two decimals.
func (d *Display) HumanReadableTimeSince(timestamp string) (string, error) {
	past, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "", fmt.Errorf("screen: parsing timestamp: %w", err)
	}

	seconds := d.now().UTC().Sub(past).Seconds()
	switch {
	case seconds < 3600:
		return fmt.Sprintf("%.2fm ago", seconds/60), nil
	case seconds < 86400:
		return fmt.Sprintf("%.2fh ago", seconds/3600), nil
	default:
		return fmt.Sprintf("%.2fd ago", seconds/86400), nil
	}
}
