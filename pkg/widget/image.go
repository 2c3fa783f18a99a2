package widget

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// Image is a native image view.
type Image struct {
	base
	width, height int
}

// NewImage creates a native image view.
func (tk *Toolkit) NewImage() (*Image, error) {
	img := &Image{}
	if err := img.init(tk, TypeImage, img); err != nil {
		return nil, err
	}
	return img, nil
}

// SetSize sets the view size. SetImage scales to it.
func (img *Image) SetSize(width, height int) error {
	img.mu.Lock()
	img.width, img.height = width, height
	img.mu.Unlock()
	return img.base.SetSize(width, height)
}

// SetImage uploads src as PNG, scaled to the view size when one is set.
func (img *Image) SetImage(src image.Image) error {
	img.mu.RLock()
	w, h := img.width, img.height
	img.mu.RUnlock()

	out := src
	if b := src.Bounds(); w > 0 && h > 0 && (b.Dx() != w || b.Dy() != h) {
		out = scale(src, w, h)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return err
	}
	return img.SetProperty(PropertyImage, base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func scale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
