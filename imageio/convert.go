package imageio

import (
	"image"
	"image/color"

	"github.com/planetlabs/deblur/rimg"
)

// fromStdImage converts a decoded image.Image to a float image
// normalized to [0, 1], preserving 1 channel for grayscale source
// images and 3 for anything else (spec §3's D ∈ {1, 3}).
func fromStdImage(im image.Image) *rimg.Image[float32] {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()

	if isGray(im) {
		out := rimg.New[float32](w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(im.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				out.Set(x, y, 0, float32(g.Y)/0xffff)
			}
		}
		return out
	}

	out := rimg.New[float32](w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bch, _ := im.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, 0, float32(r)/0xffff)
			out.Set(x, y, 1, float32(g)/0xffff)
			out.Set(x, y, 2, float32(bch)/0xffff)
		}
	}
	return out
}

func isGray(im image.Image) bool {
	switch im.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}

// toStdImage converts im to an 8-bit image.Image, clamping samples to
// [0, 1] first. D=1 becomes *image.Gray; D=3 becomes *image.NRGBA with
// full opacity.
func toStdImage(im *rimg.Image[float32]) image.Image {
	if im.D == 1 {
		out := image.NewGray(image.Rect(0, 0, im.W, im.H))
		for y := 0; y < im.H; y++ {
			for x := 0; x < im.W; x++ {
				out.SetGray(x, y, color.Gray{Y: to8(im.At(x, y, 0))})
			}
		}
		return out
	}

	out := image.NewNRGBA(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.SetNRGBA(x, y, color.NRGBA{
				R: to8(im.At(x, y, 0)),
				G: to8(im.At(x, y, 1)),
				B: to8(im.At(x, y, 2)),
				A: 0xff,
			})
		}
	}
	return out
}

// toStdImage16 is toStdImage at 16-bit depth, used for the plain TIFF
// output path (clamped to [0, 1] like the 8-bit formats, just with
// more headroom before banding).
func toStdImage16(im *rimg.Image[float32]) image.Image {
	if im.D == 1 {
		out := image.NewGray16(image.Rect(0, 0, im.W, im.H))
		for y := 0; y < im.H; y++ {
			for x := 0; x < im.W; x++ {
				out.SetGray16(x, y, color.Gray16{Y: to16(im.At(x, y, 0))})
			}
		}
		return out
	}

	out := image.NewNRGBA64(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: to16(im.At(x, y, 0)),
				G: to16(im.At(x, y, 1)),
				B: to16(im.At(x, y, 2)),
				A: 0xffff,
			})
		}
	}
	return out
}

// toStdImage16Stretched linearly maps im's own [min, max] sample range
// to the full 16-bit range instead of clamping to [0, 1], so debug
// dumps of intermediate values outside the display range stay legible.
func toStdImage16Stretched(im *rimg.Image[float32]) image.Image {
	lo, hi := im.Min(), im.Max()
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stretch := func(v float32) uint16 {
		t := (v - lo) / span
		return to16(t)
	}

	if im.D == 1 {
		out := image.NewGray16(image.Rect(0, 0, im.W, im.H))
		for y := 0; y < im.H; y++ {
			for x := 0; x < im.W; x++ {
				out.SetGray16(x, y, color.Gray16{Y: stretch(im.At(x, y, 0))})
			}
		}
		return out
	}

	out := image.NewNRGBA64(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: stretch(im.At(x, y, 0)),
				G: stretch(im.At(x, y, 1)),
				B: stretch(im.At(x, y, 2)),
				A: 0xffff,
			})
		}
	}
	return out
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

func to16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
