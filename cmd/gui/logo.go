package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
)

var (
	colorBackground = color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	colorAccent     = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// logoImage draws the magnifying-glass logo on the app background
func logoImage(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, colorBackground)
		}
	}

	// Ring of the magnifying glass
	cx, cy := size*43/100, size*39/100
	radius := size * 23 / 100
	thickness := size * 4 / 100
	inner := (radius - thickness) * (radius - thickness)
	outer := (radius + thickness) * (radius + thickness)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dist := dx*dx + dy*dy; dist >= inner && dist <= outer {
				img.Set(x, y, colorAccent)
			}
		}
	}

	// Handle
	start := size * 59 / 100
	length := size * 29 / 100
	half := size * 3 / 100
	for i := 0; i < length; i++ {
		for j := -half; j < half; j++ {
			x, y := start+i, start+i+j
			if x >= 0 && y >= 0 && x < size && y < size {
				img.Set(x, y, colorAccent)
			}
		}
	}

	return img
}

// logoResource returns the logo as a PNG resource for the window icon
func logoResource() fyne.Resource {
	var buf bytes.Buffer
	if err := png.Encode(&buf, logoImage(256)); err != nil {
		return nil
	}
	return fyne.NewStaticResource("lumox.png", buf.Bytes())
}
