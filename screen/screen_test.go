package screen

import (
	"image"
	"testing"
	"time"
)

type fakeDevice struct {
	w, h      int
	begins    int
	clears    int
	refreshes int
	img       image.Image
}

func (d *fakeDevice) String() string { return "fake device" }

func (d *fakeDevice) Begin() error {
	d.begins++
	return nil
}

func (d *fakeDevice) Clear() {
	d.clears++
}

func (d *fakeDevice) Image(m image.Image) error {
	d.img = m
	return nil
}

func (d *fakeDevice) Refresh() error {
	d.refreshes++
	return nil
}

func (d *fakeDevice) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.w, d.h)
}

func newTestDisplay(t *testing.T, w, h int, opts Options) (*Display, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{w: w, h: h}
	d, err := New(dev, opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, dev
}

func canvasBlank(t *testing.T, d *Display) bool {
	t.Helper()
	r := d.img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := d.img.At(x, y).RGBA()
			if cr != 0 || cg != 0 || cb != 0 {
				return false
			}
		}
	}
	return true
}

func TestTextOffsets(t *testing.T) {
	for n := 1; n <= 5; n++ {
		offsets := TextOffsets(n)
		if len(offsets) != n {
			t.Fatalf("expected %d offsets, got %d", n, len(offsets))
		}
		if offsets[0] != 0 {
			t.Errorf("expected %d-line layout to start at 0, got %d", n, offsets[0])
		}
		for i := 1; i < len(offsets); i++ {
			if offsets[i] <= offsets[i-1] {
				t.Errorf("expected strictly increasing offsets for %d lines, got %v", n, offsets)
			}
		}
	}

	for _, n := range []int{-1, 0, 6, 7, 100} {
		if v := TextOffsets(n); v != nil {
			t.Errorf("expected no layout for %d lines, got %v", n, v)
		}
	}
}

func TestTextOffsetsShared(t *testing.T) {
	four, five := TextOffsets(4), TextOffsets(5)
	for i := range four {
		if four[i] != five[i] {
			t.Errorf("expected 4- and 5-line layouts to share offsets, got %v and %v", four, five)
		}
	}
}

func TestSetTextLinesFontSize(t *testing.T) {
	testCases := []struct {
		lines  int
		indent int
		want   int
	}{
		{1, 0, 14}, {1, 9, 14}, {1, 10, 13}, {1, 20, 13},
		{2, 0, 14}, {2, 9, 14}, {2, 10, 13}, {2, 20, 13},
		{3, 0, 10}, {3, 9, 10}, {3, 10, 9}, {3, 20, 9},
		{4, 0, 10}, {4, 9, 10}, {4, 10, 9}, {4, 20, 9},
		{5, 0, 10}, {5, 9, 10}, {5, 10, 9}, {5, 20, 9},
	}
	for _, test := range testCases {
		b := Base{Indent: test.indent}
		b.SetTextLines(test.lines)
		if b.FontSize() != test.want {
			t.Errorf("%d lines at indent %d: expected font size %d, got %d",
				test.lines, test.indent, test.want, b.FontSize())
		}
	}
}

func TestDisplayTextEmpty(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 64, Options{})
	d.Prepare()

	b := NewBase("test", d, 0)
	size := b.FontSize()
	if err := b.DisplayText(nil); err != nil {
		t.Fatal(err)
	}
	if b.FontSize() != size {
		t.Errorf("expected font size to stay %d, got %d", size, b.FontSize())
	}
	if !canvasBlank(t, d) {
		t.Error("expected the canvas to stay blank")
	}
}

func TestDisplayTextDraws(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 64, Options{})
	d.Prepare()

	b := NewBase("test", d, 0)
	if err := b.DisplayText([]string{"HELLO"}); err != nil {
		t.Fatal(err)
	}
	if b.FontSize() != 14 {
		t.Errorf("expected font size 14 for a single line, got %d", b.FontSize())
	}
	if canvasBlank(t, d) {
		t.Error("expected text on the canvas")
	}
}

func TestDisplayTextLineLimit(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 64, Options{})
	d.Prepare()

	// The first five lines are blank; if the excess two were drawn the
	// canvas would no longer be blank.
	lines := []string{"", "", "", "", "", "EXCESS", "EXCESS"}
	b := NewBase("test", d, 0)
	if err := b.DisplayText(lines); err != nil {
		t.Fatal(err)
	}
	if b.textLines != 5 {
		t.Errorf("expected the layout to clamp to 5 lines, got %d", b.textLines)
	}
	if !canvasBlank(t, d) {
		t.Error("expected lines beyond the fifth to be dropped")
	}
}

func TestFontCache(t *testing.T) {
	a, err := Font(12, false)
	if err != nil {
		t.Fatal(err)
	}
	count := fontCache.rasterized
	b, err := Font(12, false)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the identical cached face")
	}
	if fontCache.rasterized != count {
		t.Error("expected no new rasterization for a cached key")
	}

	bold, err := Font(12, true)
	if err != nil {
		t.Fatal(err)
	}
	if bold == a {
		t.Error("expected a distinct face for the bold variant")
	}
}

func TestFontInvalidSize(t *testing.T) {
	if _, err := Font(-1, false); err == nil {
		t.Error("expected an error for a negative size")
	}
}

func TestBaseFontDefaultSize(t *testing.T) {
	b := Base{}
	b.SetTextLines(2)
	face, err := b.Font(0, false)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Font(14, false)
	if err != nil {
		t.Fatal(err)
	}
	if face != want {
		t.Error("expected Font(0, false) to resolve the screen's computed size")
	}
}

func TestRun(t *testing.T) {
	d, dev := newTestDisplay(t, 128, 64, Options{})
	s := NewExit(d, 0)

	refreshes := dev.refreshes
	if err := Run(s); err != nil {
		t.Fatal(err)
	}
	if dev.refreshes != refreshes+1 {
		t.Errorf("expected one frame flip, got %d", dev.refreshes-refreshes)
	}
	if dev.img == nil {
		t.Fatal("expected the canvas to reach the device")
	}
}

func TestRunDuration(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 64, Options{})
	s := NewExit(d, 50*time.Millisecond)

	start := time.Now()
	if err := Run(s); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected the frame to be held for 50ms, returned after %s", elapsed)
	}
}
