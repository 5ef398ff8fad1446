// Package texture implements the pixel buffer type and PNG/JPEG decode
// collaborators the engine samples during shading. Decoders reformat
// into one of two explicit pixel formats; they never guess at a
// mismatched color space, they surface it as an error instead.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
)

// Format is the pixel layout of a Buffer.
type Format int

const (
	// RGB8 is 3 bytes per pixel, no alpha.
	RGB8 Format = iota
	// RGBA8 is 4 bytes per pixel.
	RGBA8
)

// BytesPerPixel returns the stride of one pixel in f.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGBA8:
		return 4
	default:
		return 3
	}
}

// ErrUnsupportedColorModel is returned when a decoded image's color
// model cannot be reformatted into RGB8/RGBA8 without guessing, e.g. a
// CMYK-encoded JPEG: its channels are not an RGB triple, and converting
// one blindly would silently corrupt color rather than report it.
var ErrUnsupportedColorModel = errors.New("texture: unsupported color model")

// Buffer is a decoded 2D pixel buffer in row-major order, top row first.
type Buffer struct {
	Width, Height int
	Format        Format
	Pixels        []byte
}

// At returns the pixel at (x, y) as RGBA in [0,255], alpha 255 for RGB8.
func (b *Buffer) At(x, y int) (r, g, b2, a uint8) {
	stride := b.Format.BytesPerPixel()
	i := (y*b.Width + x) * stride
	r = b.Pixels[i]
	g = b.Pixels[i+1]
	b2 = b.Pixels[i+2]
	a = 255
	if stride == 4 {
		a = b.Pixels[i+3]
	}
	return
}

// Set writes an RGBA pixel at (x, y). For an RGB8 buffer the alpha
// channel is discarded.
func (b *Buffer) Set(x, y int, rgba [4]uint8) {
	stride := b.Format.BytesPerPixel()
	i := (y*b.Width + x) * stride
	b.Pixels[i] = rgba[0]
	b.Pixels[i+1] = rgba[1]
	b.Pixels[i+2] = rgba[2]
	if stride == 4 {
		b.Pixels[i+3] = rgba[3]
	}
}

// DecodePNG decodes a PNG image into a Buffer.
func DecodePNG(r io.Reader) (*Buffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode png: %w", err)
	}
	return fromImage(img)
}

// DecodeJPEG decodes a JPEG image into a Buffer.
func DecodeJPEG(r io.Reader) (*Buffer, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode jpeg: %w", err)
	}
	return fromImage(img)
}

// DecodeBytes sniffs a PNG/JPEG signature in data and dispatches to the
// matching decoder.
func DecodeBytes(data []byte) (*Buffer, error) {
	r := bytes.NewReader(data)
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return DecodePNG(r)
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return DecodeJPEG(r)
	default:
		return nil, fmt.Errorf("texture: unrecognized image signature")
	}
}

func fromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		buf := &Buffer{Width: w, Height: h, Format: RGBA8, Pixels: make([]byte, w*h*4)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				o := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				copy(buf.Pixels[i:i+4], src.Pix[o:o+4])
			}
		}
		return buf, nil
	case *image.RGBA:
		buf := &Buffer{Width: w, Height: h, Format: RGBA8, Pixels: make([]byte, w*h*4)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				o := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				copy(buf.Pixels[i:i+4], src.Pix[o:o+4])
			}
		}
		return buf, nil
	case *image.CMYK:
		return nil, fmt.Errorf("texture: decode: %w", ErrUnsupportedColorModel)
	default:
		buf := &Buffer{Width: w, Height: h, Format: RGB8, Pixels: make([]byte, w*h*3)}
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				buf.Pixels[i] = byte(r >> 8)
				buf.Pixels[i+1] = byte(g >> 8)
				buf.Pixels[i+2] = byte(b >> 8)
				i += 3
			}
		}
		return buf, nil
	}
}
