package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// splashContent is the logo with the app name below it
func splashContent() fyne.CanvasObject {
	logo := canvas.NewImageFromImage(logoImage(200))
	logo.FillMode = canvas.ImageFillContain
	logo.SetMinSize(fyne.NewSize(100, 100))

	name := canvas.NewText("LUMOX", colorAccent)
	name.TextSize = 24
	name.TextStyle.Bold = true
	name.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(colorBackground)
	return container.NewStack(bg, container.NewCenter(container.NewVBox(logo, name)))
}

// showSplash shows the splash window for d, then calls next and closes it.
// A zero duration skips the splash.
func showSplash(a fyne.App, d time.Duration, next func()) {
	if d <= 0 {
		next()
		return
	}

	var w fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		w = drv.CreateSplashWindow()
	} else {
		w = a.NewWindow("Lumox")
	}
	w.SetContent(splashContent())
	w.Resize(fyne.NewSize(250, 200))
	w.CenterOnScreen()
	w.Show()

	go func() {
		time.Sleep(d)
		fyne.Do(func() {
			next()
			w.Close()
		})
	}()
}
