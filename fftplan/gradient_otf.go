package fftplan

import "github.com/planetlabs/deblur/rimg"

// GradientOTFs returns the optical transfer functions of the
// forward-difference derivative stencils ([0, -1, 1] horizontal and
// its transpose vertical), embedded at size (w, h, d) via PSF2OTF.
// These are the frequency-domain diagonal representations of ∂x and
// ∂y that both the L0 sharp-image predictor (spec §4.4's D†D) and the
// TV deconvolution u-subproblem need.
func GradientOTFs(w, h, d int) (dxOtf, dyOtf *rimg.Spectrum, err error) {
	dx := rimg.New[float32](3, 3, 1)
	dx.Set(1, 1, 0, -1)
	dx.Set(2, 1, 0, 1)
	dxOtf, err = PSF2OTF(dx, w, h, d)
	if err != nil {
		return nil, nil, err
	}

	dy := rimg.New[float32](3, 3, 1)
	dy.Set(1, 1, 0, -1)
	dy.Set(1, 2, 0, 1)
	dyOtf, err = PSF2OTF(dy, w, h, d)
	if err != nil {
		return nil, nil, err
	}
	return dxOtf, dyOtf, nil
}
