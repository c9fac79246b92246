// Package export turns intensity buffers into PNG files.
package export

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionLineHeight = 28
	captionMargin     = 4
)

// Options controls how a heatmap is framed.
type Options struct {
	Scale   int
	Caption []string
}

// Compose scales img by an integer factor without smoothing and, when caption
// lines are given, appends a black footer with the lines in white.
func Compose(img image.Image, opts Options) image.Image {
	scale := max(opts.Scale, 1)
	b := img.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale
	footer := 0
	if len(opts.Caption) > 0 {
		footer = len(opts.Caption)*captionLineHeight + captionMargin
	}

	if scale == 1 && footer == 0 {
		return img
	}

	dst := image.NewGray(image.Rect(0, 0, w, h+footer))
	draw.NearestNeighbor.Scale(dst, image.Rect(0, 0, w, h), img, b, draw.Src, nil)
	drawCaption(dst, h, opts.Caption)
	return dst
}

func drawCaption(dst draw.Image, top int, lines []string) {
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}
	for i, line := range lines {
		y := top + (i+1)*captionLineHeight - (captionLineHeight-face.Metrics().Ascent.Ceil())/2
		dr.Dot = fixed.Point26_6{X: fixed.I(captionMargin), Y: fixed.I(y)}
		dr.DrawString(line)
	}
}

// SheetGap is the height of the rule drawn between tiles of a sheet.
const SheetGap = 8

var sheetRule = color.Gray{Y: 64}

// Sheet stacks tiles top to bottom, left aligned, with a gray rule between
// neighbours. It returns nil for no tiles.
func Sheet(tiles []image.Image) image.Image {
	if len(tiles) == 0 {
		return nil
	}
	var size image.Point
	for _, t := range tiles {
		size.X = max(size.X, t.Bounds().Dx())
		size.Y += t.Bounds().Dy()
	}
	size.Y += (len(tiles) - 1) * SheetGap

	dst := image.NewGray(image.Rectangle{Max: size})
	top := 0
	for i, t := range tiles {
		if i > 0 {
			rule := image.Rect(0, top, size.X, top+SheetGap)
			draw.Draw(dst, rule, image.NewUniform(sheetRule), image.Point{}, draw.Src)
			top += SheetGap
		}
		b := t.Bounds()
		draw.Draw(dst, b.Sub(b.Min).Add(image.Pt(0, top)), t, b.Min, draw.Src)
		top += b.Dy()
	}
	return dst
}

// SaveImage saves an image to a file
func SaveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
