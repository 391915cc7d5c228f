package tvdeconv

func sqNorm(c complex64) float32 {
	r, i := real(c), imag(c)
	return r*r + i*i
}

func conj64(c complex64) complex64 {
	return complex(real(c), -imag(c))
}
