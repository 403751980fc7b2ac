package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Image formats
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// FormatFromPath guesses the image format from a file extension, falling
// back to fallback
func FormatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".webp":
		return FormatWebP
	default:
		return strings.ToLower(fallback)
	}
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save writes img to path, choosing the format from the extension
func Save(path string, img image.Image, fallback string) (err error) {
	format := FormatFromPath(path, fallback)
	if format != FormatPNG && format != FormatWebP {
		return fmt.Errorf("unsupported image format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Encode(f, img, format)
}
