// Package imageio is the external collaborator for raster and kernel
// text-matrix I/O (spec §6): it owns the file formats the two CLIs
// read and write, keeping the core packages free of any filesystem
// concern. Grounded on the teacher's own image loaders
// (cmd/train/image.go, data/image.go): open, image.Decode, defer
// Close.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/tiff"

	"github.com/planetlabs/deblur/rimg"
)

// ErrIO wraps an underlying os/codec error so callers can distinguish
// an I/O failure from any other kind of error (spec §7).
type ErrIO struct {
	Op   string
	Path string
	Err  error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("imageio: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrIO) Unwrap() error { return e.Err }

// ReadImage decodes a PNG, JPEG or TIFF file into a grayscale or
// 3-channel float image normalized to [0, 1]. The on-disk format is
// sniffed from its header, matching image.Decode's own behavior; TIFF
// decoding is registered explicitly since it is not one of the
// standard library's built-in formats.
func ReadImage(path string) (*rimg.Image[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ErrIO{"open", path, err}
	}
	defer f.Close()

	im, _, err := image.Decode(f)
	if err != nil {
		return nil, &ErrIO{"decode", path, err}
	}
	return fromStdImage(im), nil
}

// WriteImage encodes im as a PNG, JPEG or TIFF file, chosen by the
// path's extension (".png", ".jpg"/".jpeg", ".tif"/".tiff"), clamping
// samples to [0, 1] before converting to 8-bit samples (16-bit
// samples for TIFF).
func WriteImage(path string, im *rimg.Image[float32]) error {
	f, err := os.Create(path)
	if err != nil {
		return &ErrIO{"create", path, err}
	}
	defer f.Close()

	switch ext(path) {
	case "png":
		if err := png.Encode(f, toStdImage(im)); err != nil {
			return &ErrIO{"encode", path, err}
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(f, toStdImage(im), nil); err != nil {
			return &ErrIO{"encode", path, err}
		}
	case "tif", "tiff":
		if err := tiff.Encode(f, toStdImage16(im), nil); err != nil {
			return &ErrIO{"encode", path, err}
		}
	default:
		return &ErrIO{"encode", path, fmt.Errorf("unsupported extension %q", ext(path))}
	}
	return nil
}

// WriteDebugTIFF writes im as a 16-bit TIFF without clamping to
// [0, 1] first (values are linearly mapped from im's own [min, max]
// range) -- used for per-iteration debug dumps of u, v, k (spec §9's
// supplemented --debug flag), which can carry negative or >1 samples
// a direct 8-bit PNG would silently clip.
func WriteDebugTIFF(path string, im *rimg.Image[float32]) error {
	f, err := os.Create(path)
	if err != nil {
		return &ErrIO{"create", path, err}
	}
	defer f.Close()
	if err := tiff.Encode(f, toStdImage16Stretched(im), nil); err != nil {
		return &ErrIO{"encode", path, err}
	}
	return nil
}

func ext(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '.' {
		i--
	}
	if i < 0 {
		return ""
	}
	s := path[i+1:]
	for j := range s {
		if s[j] >= 'A' && s[j] <= 'Z' {
			return toLower(s)
		}
	}
	return s
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
