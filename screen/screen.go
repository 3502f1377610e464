package screen

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/image/font"
)

// Screen is a self-contained unit of display content with its own render
// logic and hold duration.
type Screen interface {
	// Name identifies the screen; it is used for screenshot file names
	// and logging.
	Name() string

	// Display is the surface the screen draws on.
	Display() *Display

	// Render draws one frame of content.
	Render() error
}

// Run executes one frame cycle: the canvas is blanked, then the screen's
// Render is invoked. Renders on a shared display must be serialized by
// the driving loop.
func Run(s Screen) error {
	s.Display().Prepare()
	return s.Render()
}

// maxTextLines is the hard per-frame line limit. DisplayText silently
// drops anything beyond it; this is a documented limit, not an error.
const maxTextLines = 5

// tallOffsets holds the vertical offsets shared by the 4- and 5-line
// layouts.
var tallOffsets = []int{0, 11, 21, 31, 41, 51}

// TextOffsets returns the vertical pixel offset of each line for an
// n-line layout, or nil when no layout exists for n.
func TextOffsets(n int) []int {
	switch {
	case n == 1:
		return []int{0}
	case n == 2:
		return []int{0, 18}
	case n == 3:
		return []int{0, 11, 21}
	case n == 4 || n == 5:
		return tallOffsets[:n]
	default:
		return nil
	}
}

// Base carries the state shared by all screens and implements the text
// layout rules. Concrete screens embed it and provide Render.
type Base struct {
	// Indent is the horizontal text offset in pixels. It also feeds the
	// font size selection.
	Indent int

	display   *Display
	name      string
	duration  time.Duration
	textLines int
	fontSize  int
}

func NewBase(name string, display *Display, duration time.Duration) Base {
	log.Printf("screen: %q created", name)
	return Base{
		display:  display,
		name:     name,
		duration: duration,
		fontSize: 8,
	}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Display() *Display { return b.display }

func (b *Base) Duration() time.Duration { return b.duration }

// FontSize is the current computed font size.
func (b *Base) FontSize() int { return b.fontSize }

// SetTextLines records the number of lines about to be shown and
// recomputes the font size. Line count and font size always change
// together; a stale size is never carried across a line-count change.
func (b *Base) SetTextLines(n int) {
	b.textLines = n

	if n > 2 {
		if b.Indent < 10 {
			b.fontSize = 10
		} else {
			b.fontSize = 9
		}
	} else {
		if b.Indent < 10 {
			b.fontSize = 14
		} else {
			b.fontSize = 13
		}
	}
}

// Font resolves a cached face. A size of 0 selects the screen's current
// computed font size.
func (b *Base) Font(size int, bold bool) (font.Face, error) {
	if size == 0 {
		size = b.fontSize
	}
	return Font(size, bold)
}

// DisplayText lays out and draws the given lines top to bottom at the
// screen's indent. Empty input is a no-op; lines beyond the fifth are
// dropped without drawing.
func (b *Base) DisplayText(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > maxTextLines {
		lines = lines[:maxTextLines]
	}

	b.SetTextLines(len(lines))
	offsets := TextOffsets(len(lines))
	if offsets == nil {
		return fmt.Errorf("screen: no text layout for %d lines", len(lines))
	}

	face, err := b.Font(0, false)
	if err != nil {
		return err
	}
	for i, line := range lines {
		b.display.DrawText(line, b.Indent, offsets[i], face)
	}
	return nil
}

// CaptureScreenshot saves the canvas under the given name, or the
// screen's own name when empty.
func (b *Base) CaptureScreenshot(name string) error {
	if name == "" {
		name = b.name
	}
	return b.display.CaptureScreenshot(name)
}

// Finish completes a frame: capture a screenshot, flip the canvas to the
// device, then hold for the screen's duration. The sleep is the pacing
// mechanism for the rotation loop driving the screens.
func (b *Base) Finish() error {
	if err := b.CaptureScreenshot(""); err != nil {
		return err
	}
	if err := b.display.Show(); err != nil {
		return err
	}
	time.Sleep(b.duration)
	return nil
}
