package rasterizer

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
	"golang.org/x/image/tiff"
)

// Encoder writes an image in some file format.
type Encoder func(io.Writer, image.Image) error

// PNGEncoder writes the image as a PNG file.
func PNGEncoder() Encoder {
	return png.Encode
}

// JPGEncoder writes the image as a JPG file.
func JPGEncoder(opts *jpeg.Options) Encoder {
	return func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, opts)
	}
}

// GIFEncoder writes the image as a GIF file.
func GIFEncoder(opts *gif.Options) Encoder {
	return func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, opts)
	}
}

// TIFFEncoder writes the image as a TIFF file.
func TIFFEncoder(opts *tiff.Options) Encoder {
	return func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, opts)
	}
}

// EncoderFor returns the encoder that matches the extension of the filename.
func EncoderFor(filename string) (Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return JPGEncoder(nil), nil
	case ".gif":
		return GIFEncoder(nil), nil
	case ".tif", ".tiff":
		return TIFFEncoder(nil), nil
	default:
		return nil, fmt.Errorf("%w: unknown image format '%s'", captcha.ErrInvalidArgument, ext)
	}
}
