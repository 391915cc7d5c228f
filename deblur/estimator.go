package deblur

import (
	"github.com/planetlabs/deblur/fftplan"
	"github.com/planetlabs/deblur/kernelpost"
	"github.com/planetlabs/deblur/rimg"
)

// FourierKernelEstimator solves, in the gradient domain, the
// Tikhonov-regularized argmin of ‖∇u ⊛ k − ∇v‖² + γ‖k‖² (spec §4.5).
// One instance is tied to a fixed blurry image v: F(∂xv) and F(∂yv)
// are precomputed once in the constructor.
type FourierKernelEstimator struct {
	ks      int
	w, h, d int
	fgvx    *rimg.Spectrum
	fgvy    *rimg.Spectrum
}

// NewFourierKernelEstimator precomputes the gradients of v and their
// spectra, and fixes the kernel side length this estimator will crop.
func NewFourierKernelEstimator(v *rimg.Image[float32], ks int) (*FourierKernelEstimator, error) {
	gx, gy := rimg.Gradients(v)
	fgvx, err := fftplan.R2C(gx)
	if err != nil {
		return nil, err
	}
	fgvy, err := fftplan.R2C(gy)
	if err != nil {
		return nil, err
	}
	return &FourierKernelEstimator{ks: ks, w: v.W, h: v.H, d: v.D, fgvx: fgvx, fgvy: fgvy}, nil
}

// Estimate produces a new kernel from the current sharp image u and
// Tikhonov weight gamma, applying the full post-processing pipeline
// (spec §4.6, via kernelpost.Process) before returning it.
func (e *FourierKernelEstimator) Estimate(u *rimg.Image[float32], gamma float32, postOpts kernelpost.Options) (*rimg.Image[float32], error) {
	gx, gy := rimg.Gradients(u)
	fgux, err := fftplan.R2C(gx)
	if err != nil {
		return nil, err
	}
	fguy, err := fftplan.R2C(gy)
	if err != nil {
		return nil, err
	}

	sol := rimg.NewSpectrum(e.w, e.h, e.d)
	gammaC := complex64(complex(gamma, 0))
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			for l := 0; l < e.d; l++ {
				fx, fy := fgux.At(x, y, l), fguy.At(x, y, l)
				num := conj64(fx)*e.fgvx.At(x, y, l) + conj64(fy)*e.fgvy.At(x, y, l)
				denom := complex64(complex(sqNorm(fx)+sqNorm(fy), 0)) + gammaC
				sol.Set(x, y, l, num/denom)
			}
		}
	}

	spatial, err := fftplan.C2R(sol)
	if err != nil {
		return nil, err
	}
	shifted := rimg.Shift(spatial)

	k := cropCenter(shifted, e.ks, e.ks)
	kernelpost.Process(k, postOpts)
	return k, nil
}

// cropCenter extracts a (kw, kh) window centered at im's center pixel.
func cropCenter(im *rimg.Image[float32], kw, kh int) *rimg.Image[float32] {
	left := im.W/2 - kw/2
	top := im.H/2 - kh/2
	out := rimg.New[float32](kw, kh, 1)
	for y := 0; y < kh; y++ {
		for x := 0; x < kw; x++ {
			out.Set(x, y, 0, im.At(left+x, top+y, 0))
		}
	}
	return out
}
