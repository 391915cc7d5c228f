package fftplan

import "github.com/planetlabs/deblur/rimg"

// R2C computes the forward FFT of a real image, returning its
// spectrum. Ports fft::r2c.
func R2C(im *rimg.Image[float32]) (*rimg.Spectrum, error) {
	p, err := Get(im.W, im.H, im.D)
	if err != nil {
		return nil, err
	}
	s := rimg.FromReal(im)
	if err := p.Forward(s); err != nil {
		return nil, err
	}
	return s, nil
}

// C2R computes the inverse FFT of a spectrum and returns the real
// part of the result. Ports ifft::c2r.
func C2R(s *rimg.Spectrum) (*rimg.Image[float32], error) {
	p, err := Get(s.W, s.H, s.D)
	if err != nil {
		return nil, err
	}
	work := s.Clone()
	if err := p.Backward(work); err != nil {
		return nil, err
	}
	return rimg.Real64FromSpectrum(work), nil
}

// PSF2OTF embeds kernel into a (w, h, d) array with wrap-around
// centering (rimg.PadCirc) and computes its forward FFT, producing the
// optical transfer function. Ports fft::psf2otf.
func PSF2OTF(kernel *rimg.Image[float32], w, h, d int) (*rimg.Spectrum, error) {
	padded := rimg.New[float32](w, h, d)
	rimg.PadCirc(padded, kernel)
	return R2C(padded)
}
