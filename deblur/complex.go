package deblur

// sqNorm returns the squared magnitude of a complex64 sample, the Go
// equivalent of std::norm used throughout the source's Fourier-domain
// elementwise solves.
func sqNorm(c complex64) float32 {
	r, i := real(c), imag(c)
	return r*r + i*i
}

func conj64(c complex64) complex64 {
	return complex(real(c), -imag(c))
}
