package screen

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontKey struct {
	size int
	bold bool
}

// fontCache memoizes rasterized faces for the process lifetime; all
// screens share it read-only after first use.
var fontCache = struct {
	sync.Mutex
	parse      sync.Once
	regular    *truetype.Font
	bold       *truetype.Font
	parseErr   error
	faces      map[fontKey]font.Face
	rasterized int
}{faces: make(map[fontKey]font.Face)}

// Font returns the face for (size, bold), rasterizing and caching it on
// the first request per key.
func Font(size int, bold bool) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("screen: invalid font size %d", size)
	}

	fontCache.parse.Do(func() {
		fontCache.regular, fontCache.parseErr = truetype.Parse(goregular.TTF)
		if fontCache.parseErr != nil {
			return
		}
		fontCache.bold, fontCache.parseErr = truetype.Parse(gobold.TTF)
	})
	if fontCache.parseErr != nil {
		return nil, fontCache.parseErr
	}

	key := fontKey{size: size, bold: bold}

	fontCache.Lock()
	defer fontCache.Unlock()
	if face, ok := fontCache.faces[key]; ok {
		return face, nil
	}

	f := fontCache.regular
	if bold {
		f = fontCache.bold
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fontCache.faces[key] = face
	fontCache.rasterized++

	return face, nil
}
