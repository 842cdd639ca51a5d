package viewer

import (
	"image"
	"image/png"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// AppID identifies the window application to the desktop.
const AppID = "io.github.r3d91ll.csvplot"

// maxWindow bounds the initial window size.
const (
	maxWindowWidth  = 1400
	maxWindowHeight = 900
)

// LoadImage decodes the PNG at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, csverrors.ViewerImageInvalid(path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, csverrors.ViewerImageInvalid(path, err)
	}
	return img, nil
}

// ViewFile opens a window showing the PNG at path and blocks until it is
// closed.
func ViewFile(path, title string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	Show(title, DrawHint(img, Hint))
	return nil
}

// Show opens a window with img and runs the GUI event loop until the
// window is closed. It must be called from the main goroutine.
func Show(title string, img image.Image) {
	if title == "" {
		title = "csvplot"
	}

	a := app.NewWithID(AppID)
	w := a.NewWindow(title)

	w.Resize(windowSize(img.Bounds()))

	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	w.SetContent(c)
	w.ShowAndRun()
}

func windowSize(b image.Rectangle) fyne.Size {
	width, height := float32(b.Dx()), float32(b.Dy())
	if width > maxWindowWidth {
		height = height * maxWindowWidth / width
		width = maxWindowWidth
	}
	if height > maxWindowHeight {
		width = width * maxWindowHeight / height
		height = maxWindowHeight
	}
	return fyne.NewSize(width, height)
}
