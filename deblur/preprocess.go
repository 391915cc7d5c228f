package deblur

import (
	"github.com/planetlabs/deblur/fftplan"
	"github.com/planetlabs/deblur/rimg"
	"github.com/planetlabs/deblur/taper"
)

// Preprocess converts a raw, possibly multi-channel and unnormalized
// input image into the grayscale, [0, 1]-normalized, FFT-friendly
// image the blind estimation core expects (spec §4.8): grayscale by
// channel mean, min-max normalization, a center-crop to the largest
// 7-smooth dimensions, and one edgetaper pass with a constant box
// kernel of side ks.
func Preprocess(raw *rimg.Image[float32], ks int) (*rimg.Image[float32], error) {
	gray := toGrayscale(raw)
	normalizeRange(gray)

	nw := fftplan.OptimalSizeDown(gray.W)
	nh := fftplan.OptimalSizeDown(gray.H)
	cropped := centerCrop(gray, nw, nh)

	box := rimg.New[float32](ks, ks, 1)
	box.Fill(1 / float32(ks*ks))
	return taper.EdgeTaper(cropped, box, 1)
}

func toGrayscale(in *rimg.Image[float32]) *rimg.Image[float32] {
	out := rimg.New[float32](in.W, in.H, 1)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			var sum float32
			for d := 0; d < in.D; d++ {
				sum += in.At(x, y, d)
			}
			out.Set(x, y, 0, sum/float32(in.D))
		}
	}
	return out
}

// normalizeRange shifts im so its minimum is 0, then scales so its
// (now shifted) maximum is 1. Ports preprocess_image's min/max pass.
func normalizeRange(im *rimg.Image[float32]) {
	min := im.Min()
	for i := range im.Pix {
		im.Pix[i] -= min
	}
	if max := im.Max(); max > 0 {
		for i := range im.Pix {
			im.Pix[i] /= max
		}
	}
}

func centerCrop(im *rimg.Image[float32], w, h int) *rimg.Image[float32] {
	offX := (im.W - w) / 2
	offY := (im.H - h) / 2
	out := rimg.New[float32](w, h, im.D)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for d := 0; d < im.D; d++ {
				out.Set(x, y, d, im.At(x+offX, y+offY, d))
			}
		}
	}
	return out
}
