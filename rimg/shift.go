package rimg

// Elem is the set of sample types the quadrant-swap shift operators
// work over: the real samples of Image[float32] and Image[float64],
// the complex64 samples of Spectrum, and complex128.
type Elem interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// shiftQuadrants implements the block permutation shared by Shift and
// IShift: four quadrant copies whose source/destination roles are
// swapped between the two directions.
func shiftQuadrants[T Elem](pix []T, w, h, d int, inverse bool) []T {
	out := make([]T, len(pix))
	idx := func(x, y, l int) int { return l + d*(x+y*w) }

	halfw := (w + 1) / 2
	halfh := (h + 1) / 2
	ohalfw := w - halfw
	ohalfh := h - halfh

	for l := 0; l < d; l++ {
		if !inverse {
			for y := 0; y < halfh; y++ {
				for x := 0; x < ohalfw; x++ {
					out[idx(x, y+ohalfh, l)] = pix[idx(x+halfw, y, l)]
				}
			}
			for y := 0; y < halfh; y++ {
				for x := 0; x < halfw; x++ {
					out[idx(x+ohalfw, y+ohalfh, l)] = pix[idx(x, y, l)]
				}
			}
			for y := 0; y < ohalfh; y++ {
				for x := 0; x < ohalfw; x++ {
					out[idx(x, y, l)] = pix[idx(x+halfw, y+halfh, l)]
				}
			}
			for y := 0; y < ohalfh; y++ {
				for x := 0; x < halfw; x++ {
					out[idx(x+ohalfw, y, l)] = pix[idx(x, y+halfh, l)]
				}
			}
		} else {
			for y := 0; y < ohalfh; y++ {
				for x := 0; x < halfw; x++ {
					out[idx(x, y+halfh, l)] = pix[idx(x+ohalfw, y, l)]
				}
			}
			for y := 0; y < ohalfh; y++ {
				for x := 0; x < ohalfw; x++ {
					out[idx(x+halfw, y+halfh, l)] = pix[idx(x, y, l)]
				}
			}
			for y := 0; y < halfh; y++ {
				for x := 0; x < halfw; x++ {
					out[idx(x, y, l)] = pix[idx(x+ohalfw, y+ohalfh, l)]
				}
			}
			for y := 0; y < halfh; y++ {
				for x := 0; x < ohalfw; x++ {
					out[idx(x+halfw, y, l)] = pix[idx(x, y+ohalfh, l)]
				}
			}
		}
	}
	return out
}

// Shift performs a centered FFT-shift, moving the DC component from
// (0, 0) to (w/2, h/2). Ports fft::shift.
func Shift[T Real](in *Image[T]) *Image[T] {
	return &Image[T]{W: in.W, H: in.H, D: in.D, Pix: shiftQuadrants(in.Pix, in.W, in.H, in.D, false)}
}

// IShift is the inverse of Shift. Ports ifft::shift.
func IShift[T Real](in *Image[T]) *Image[T] {
	return &Image[T]{W: in.W, H: in.H, D: in.D, Pix: shiftQuadrants(in.Pix, in.W, in.H, in.D, true)}
}

// ShiftSpectrum is Shift specialized to complex spectra.
func ShiftSpectrum(in *Spectrum) *Spectrum {
	return &Spectrum{W: in.W, H: in.H, D: in.D, Pix: shiftQuadrants(in.Pix, in.W, in.H, in.D, false)}
}

// IShiftSpectrum is IShift specialized to complex spectra.
func IShiftSpectrum(in *Spectrum) *Spectrum {
	return &Spectrum{W: in.W, H: in.H, D: in.D, Pix: shiftQuadrants(in.Pix, in.W, in.H, in.D, true)}
}
