package deblur

import (
	"github.com/planetlabs/deblur/fftplan"
	"github.com/planetlabs/deblur/rimg"
)

// L0ImagePredictor solves, via half-quadratic splitting, the
// approximate argmin of ‖K∗u − v‖² + λ·card{∇u ≠ 0} (spec §4.4). One
// instance is tied to a fixed blurry image v: fv and D†D are
// precomputed once in the constructor, since both depend only on v's
// size and content, not on the current kernel estimate.
type L0ImagePredictor struct {
	v   *rimg.Image[float32]
	fv  *rimg.Spectrum
	dtd *rimg.Image[float32]
}

// NewL0ImagePredictor precomputes fv = FFT(v) and
// D†D = |F(∂x)|² + |F(∂y)|² at v's resolution.
func NewL0ImagePredictor(v *rimg.Image[float32]) (*L0ImagePredictor, error) {
	fv, err := fftplan.R2C(v)
	if err != nil {
		return nil, err
	}
	dxOtf, dyOtf, err := fftplan.GradientOTFs(v.W, v.H, 1)
	if err != nil {
		return nil, err
	}
	dtd := rimg.New[float32](v.W, v.H, 1)
	for i := range dtd.Pix {
		dtd.Pix[i] = sqNorm(dxOtf.Pix[i]) + sqNorm(dyOtf.Pix[i])
	}
	return &L0ImagePredictor{v: v, fv: fv, dtd: dtd}, nil
}

// Predict runs the β-continuation schedule (β from betaInit, scaled
// by betaRate each step, stopping once β reaches betaMax) and returns
// a new sharp-image estimate for kernel k and weight lambda.
//
// It always starts from the predictor's own v, never from a
// previously tracked u — the source resets u inside the predictor on
// every call, discarding whatever the caller passed in; spec §9's
// open question on predictor initialization directs this to be
// preserved rather than "fixed".
func (p *L0ImagePredictor) Predict(k *rimg.Image[float32], lambda, betaInit, betaRate, betaMax float32) (*rimg.Image[float32], error) {
	w, h, d := p.v.W, p.v.H, p.v.D

	kOtf, err := fftplan.PSF2OTF(k, w, h, 1)
	if err != nil {
		return nil, err
	}

	ktf := rimg.NewSpectrum(w, h, d)
	ktk := rimg.New[float32](w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ko := kOtf.At(x, y, 0)
			ktk.Set(x, y, 0, sqNorm(ko))
			for l := 0; l < d; l++ {
				ktf.Set(x, y, l, conj64(ko)*p.fv.At(x, y, l))
			}
		}
	}

	u := p.v
	beta := betaInit
	for beta < betaMax {
		gx, gy := rimg.CircularGradients(u)
		for i := range gx.Pix {
			n := gx.Pix[i]*gx.Pix[i] + gy.Pix[i]*gy.Pix[i]
			if n < lambda/beta {
				gx.Pix[i] = 0
				gy.Pix[i] = 0
			}
		}
		divergence := rimg.CircularDivergence(gx, gy)
		adj, err := fftplan.R2C(divergence)
		if err != nil {
			return nil, err
		}

		sol := rimg.NewSpectrum(w, h, d)
		betaC := complex64(complex(beta, 0))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				denom := complex64(complex(ktk.At(x, y, 0)+beta*p.dtd.At(x, y, 0), 0))
				for l := 0; l < d; l++ {
					num := ktf.At(x, y, l) - betaC*adj.At(x, y, l)
					sol.Set(x, y, l, num/denom)
				}
			}
		}
		u, err = fftplan.C2R(sol)
		if err != nil {
			return nil, err
		}
		beta *= betaRate
	}
	return u, nil
}
