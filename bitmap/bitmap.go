// SPDX-License-Identifier: MIT

// Package bitmap loads and stores 24-bit BMP images as flat BGR grids, the
// layout the stencil engine works on.
package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"github.com/katalvlaran/halo/grid"
)

// Channels is the number of interleaved bytes per pixel (B, G, R).
const Channels = 3

var (
	// ErrNotBitmap indicates the input does not start with the "BM" magic.
	ErrNotBitmap = errors.New("bitmap: not a BMP file")

	// ErrTruncated indicates the input ended before the pixel data did.
	ErrTruncated = errors.New("bitmap: truncated file")

	// ErrNilImage is returned when encoding a nil image.
	ErrNilImage = errors.New("bitmap: image is nil")
)

// Image is a decoded bitmap. Pixels has Height rows of Width*Channels bytes,
// top row first, each pixel stored as B, G, R.
type Image struct {
	Pixels *grid.Grid[uint8]
	Width  int
	Height int
}

// Decode reads a BMP stream into an Image.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, ErrTruncated
	}
	if magic[0] != 'B' || magic[1] != 'M' {
		return nil, ErrNotBitmap
	}

	src, err := bmp.Decode(br)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("bitmap: decode: %w", err)
	}

	return fromImage(src)
}

// fromImage flattens any image.Image into BGR rows.
func fromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels, err := grid.New[uint8](h, w*Channels)
	if err != nil {
		return nil, fmt.Errorf("bitmap: %dx%d image: %w", w, h, err)
	}
	for y := 0; y < h; y++ {
		row, _ := pixels.Row(y)
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x*Channels], row[x*Channels+1], row[x*Channels+2] = c.B, c.G, c.R
		}
	}

	return &Image{Pixels: pixels, Width: w, Height: h}, nil
}

// Encode writes img as an opaque 24-bit BMP.
func Encode(w io.Writer, img *Image) error {
	if img == nil || img.Pixels == nil {
		return ErrNilImage
	}
	if img.Pixels.Rows() != img.Height || img.Pixels.Cols() != img.Width*Channels {
		return fmt.Errorf("bitmap: pixels %dx%d for %dx%d image: %w",
			img.Pixels.Rows(), img.Pixels.Cols(), img.Width, img.Height, grid.ErrDimensionMismatch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row, _ := img.Pixels.Row(y)
		for x := 0; x < img.Width; x++ {
			p := x * Channels
			dst.SetRGBA(x, y, color.RGBA{R: row[p+2], G: row[p+1], B: row[p], A: 0xff})
		}
	}

	return bmp.Encode(w, dst)
}

// Read decodes the BMP file at path. Errors carry the file name.
func Read(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// Write encodes img into a new file at path. Errors carry the file name.
func Write(path string, img *Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, img); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
