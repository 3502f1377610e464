// Package pixel implements the 1-bit color and image formats used by monochrome OLED panels.
//
// The types are compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces.
package pixel
