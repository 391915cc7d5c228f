// Package taper implements the boundary-handling utilities the
// blind-deblurring core relies on before any circular convolution:
// edge tapering (spec §4.1) and replicated-border padding around the
// non-blind TV solve.
package taper

import (
	"math"

	"github.com/planetlabs/deblur/fftplan"
	"github.com/planetlabs/deblur/rimg"
)

// EdgeTaper blends in with a copy of itself, to limit the boundary
// ringing that circular convolution in the frequency domain would
// otherwise produce. Ports edgetaper.hpp's edgetaper function.
func EdgeTaper(in *rimg.Image[float32], kernel *rimg.Image[float32], iterations int) (*rimg.Image[float32], error) {
	weights := buildTaperWeights(in.W, in.H, kernel.W, kernel.H)

	kernelFT, err := fftplan.PSF2OTF(kernel, in.W, in.H, in.D)
	if err != nil {
		return nil, err
	}

	out := in.Clone()
	for it := 0; it < iterations; it++ {
		outFT, err := fftplan.R2C(out)
		if err != nil {
			return nil, err
		}
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				k := kernelFT.At(x, y, 0)
				for l := 0; l < out.D; l++ {
					outFT.Set(x, y, l, outFT.At(x, y, l)*k)
				}
			}
		}
		blurred, err := fftplan.C2R(outFT)
		if err != nil {
			return nil, err
		}

		next := rimg.New[float32](out.W, out.H, out.D)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				w := weights.At(x, y, 0)
				for l := 0; l < out.D; l++ {
					v := w*out.At(x, y, l) + (1-w)*blurred.At(x, y, l)
					next.Set(x, y, l, v)
				}
			}
		}
		out = next
	}
	return out, nil
}

// buildTaperWeights builds the separable squared-sine taper mask
// w(x,y) = w_x(x)*w_y(y), 1 in the interior.
func buildTaperWeights(w, h, kw, kh int) *rimg.Image[float32] {
	out := rimg.New[float32](w, h, 1)
	wx := make([]float32, w)
	for x := 0; x < w; x++ {
		wx[x] = 1
		if x < kw {
			wx[x] = sq(sinPi(float64(x) / float64(2*kw-1)))
		} else if x > w-kw {
			wx[x] = sq(sinPi(float64(w-1-x) / float64(2*kw-1)))
		}
	}
	wy := make([]float32, h)
	for y := 0; y < h; y++ {
		wy[y] = 1
		if y < kh {
			wy[y] = sq(sinPi(float64(y) / float64(2*kh-1)))
		} else if y > h-kh {
			wy[y] = sq(sinPi(float64(h-1-y) / float64(2*kh-1)))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, 0, wx[x]*wy[y])
		}
	}
	return out
}

func sinPi(t float64) float32 { return float32(math.Sin(t * math.Pi)) }
func sq(v float32) float32    { return v * v }
