package screen

import (
	"image"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/BeatGlow/infoscreen/pixel"
)

func TestNewClearsDevice(t *testing.T) {
	d, dev := newTestDisplay(t, 128, 32, Options{})

	if dev.begins == 0 || dev.clears == 0 || dev.refreshes == 0 {
		t.Error("expected construction to initialize and blank the device")
	}
	if v := d.Size(); !v.Eq(image.Pt(128, 32)) {
		t.Errorf("expected surface size 128x32, got %s", v)
	}

	// Clear is safe to call again.
	begins := dev.begins
	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}
	if dev.begins != begins+1 {
		t.Error("expected Clear to re-initialize the device")
	}
}

func TestPrepareBlanksCanvas(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 32, Options{})
	d.img.Set(10, 10, pixel.On)
	d.Prepare()
	if !canvasBlank(t, d) {
		t.Error("expected Prepare to blank the canvas")
	}
}

func TestShowRotates(t *testing.T) {
	d, dev := newTestDisplay(t, 128, 32, Options{Rotate: 180})
	d.Prepare()
	d.img.Set(0, 0, pixel.On)

	canvas := d.img
	if err := d.Show(); err != nil {
		t.Fatal(err)
	}

	r, g, b, _ := dev.img.At(127, 31).RGBA()
	if r == 0 && g == 0 && b == 0 {
		t.Error("expected the lit pixel to land in the opposite corner after 180° rotation")
	}
	if d.img == canvas {
		t.Error("expected the draw target to be rebound to the rotated image")
	}
}

func TestShowWithoutRotation(t *testing.T) {
	d, dev := newTestDisplay(t, 128, 32, Options{})
	d.Prepare()
	d.img.Set(0, 0, pixel.On)

	if err := d.Show(); err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := dev.img.At(0, 0).RGBA()
	if r == 0 && g == 0 && b == 0 {
		t.Error("expected the lit pixel to stay put without rotation")
	}
}

func TestCaptureScreenshotDisabled(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 32, Options{})
	if err := d.CaptureScreenshot("nope"); err != nil {
		t.Fatal(err)
	}
}

func TestCaptureScreenshot(t *testing.T) {
	dir := t.TempDir()
	d, _ := newTestDisplay(t, 128, 32, Options{Screenshot: true, ScreenshotDir: dir})
	d.Prepare()

	if err := d.CaptureScreenshot("Status"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "status.png")); err != nil {
		t.Errorf("expected a lower-cased screenshot file: %v", err)
	}
}

func TestCaptureScreenshotBadPath(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 32, Options{
		Screenshot:    true,
		ScreenshotDir: filepath.Join(t.TempDir(), "missing", "dir"),
	})
	if err := d.CaptureScreenshot("status"); err == nil {
		t.Error("expected a write error for a missing directory")
	}
}

func TestHumanReadableTimeNow(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 32, Options{})

	pattern := regexp.MustCompile(`^T\[\d{2}:\d{2}:\d{2}\]$`)
	if v := d.HumanReadableTimeNow(); !pattern.MatchString(v) {
		t.Errorf("expected T[HH:MM:SS], got %q", v)
	}

	d.now = func() time.Time {
		return time.Date(2025, 10, 17, 18, 19, 13, 0, time.UTC)
	}
	if v := d.HumanReadableTimeNow(); v != "T[18:19:13]" {
		t.Errorf("expected T[18:19:13], got %q", v)
	}
}

func TestHumanReadableTimeSince(t *testing.T) {
	d, _ := newTestDisplay(t, 128, 32, Options{})
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"seconds", 30 * time.Second, "0.50m ago"},
		{"minutes", 90 * time.Minute, "1.50h ago"},
		{"days", 48 * time.Hour, "2.00d ago"},
		{"minute-boundary", 59*time.Minute + 59*time.Second, "59.98m ago"},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			d.now = func() time.Time { return epoch.Add(test.elapsed) }
			v, err := d.HumanReadableTimeSince("2025-01-01T00:00:00+00:00")
			if err != nil {
				it.Fatal(err)
			}
			if v != test.want {
				it.Errorf("expected %q, got %q", test.want, v)
			}
		})
	}

	t.Run("invalid", func(it *testing.T) {
		if _, err := d.HumanReadableTimeSince("yesterday-ish"); err == nil {
			it.Error("expected a parse error")
		}
	})
}
