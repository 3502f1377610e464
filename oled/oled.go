// Package oled contains drivers for monochrome OLED display controllers.
package oled

import (
	"image"
	"log"
	"os"
	"strings"

	"github.com/BeatGlow/infoscreen/draw"
)

var debug bool

func init() {
	debug = os.Getenv("OLED_DEBUG") != ""
}

// Display is a monochrome OLED display.
type Display interface {
	String() string

	// Close the display driver.
	Close() error

	// Begin powers on the panel and (re)sends the init sequence.
	Begin() error

	// Clear the display buffer.
	Clear()

	// Image copies m into the display buffer, converting colors through
	// the monochrome color model.
	Image(m image.Image) error

	// Refresh pushes the display buffer to the panel.
	Refresh() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int
}

// Model identifies a supported display controller.
type Model uint8

const (
	ModelSSD1306 Model = iota
	ModelSSD1309
)

func (m Model) String() string {
	switch m {
	case ModelSSD1309:
		return "SSD1309"
	default:
		return "SSD1306"
	}
}

// ModelByName maps a driver name to a Model. Unrecognized names fall back
// to SSD1306; the fallback is logged, not an error.
func ModelByName(name string) Model {
	switch strings.ToLower(name) {
	case "ssd1306":
		return ModelSSD1306
	case "ssd1309":
		return ModelSSD1309
	default:
		log.Printf("oled: unknown driver %q, falling back to SSD1306", name)
		return ModelSSD1306
	}
}

// Open initializes a display of this model over the provided connection.
func (m Model) Open(c Conn, config *Config) (Display, error) {
	switch m {
	case ModelSSD1309:
		return SSD1309(c, config)
	default:
		return SSD1306(c, config)
	}
}

type baseDisplay struct {
	draw.Image
	c      Conn
	width  int
	height int
}

func (d *baseDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *baseDisplay) command(command byte, data ...byte) error {
	if debug {
		log.Printf("oled: command %#02x % x", command, data)
	}
	return d.c.Command(command, data...)
}
