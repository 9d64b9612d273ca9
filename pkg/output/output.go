// Package output encodes rendered frames to disk.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for image formats with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Supported image formats
const (
	FormatPPM  = "ppm"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// Formats lists every supported format
var Formats = []string{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}

// WritePPM writes img as a plain-text (P3) PPM: a header line with the magic, one with
// the dimensions and one with the maximum value, then one "r g b" line per pixel in
// row-major order from the top row down.
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF, "tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatFromPath returns the image format implied by the path's extension
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case FormatPPM, FormatPNG, FormatBMP, FormatTIFF:
		return ext, nil
	case "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, filepath.Ext(path), strings.Join(Formats, ", "))
	}
}

// SaveImage encodes img into path, creating parent directories as needed. The format
// follows the file extension.
func SaveImage(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file: %w", cerr)
		}
	}()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("error saving %s: %w", strings.ToUpper(format), err)
	}
	return nil
}

// DefaultPath returns output/<scene>/render_<timestamp>.<format>
func DefaultPath(sceneName, format string, at time.Time) string {
	timestamp := at.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format))
}
