package rimg

// Gradients computes the forward-difference gradients of u with a
// zero boundary: the last column of Gx and the last row of Gy are
// zero, matching img_t::gradientx/gradienty in the original source.
// This is the gradient used by the Fourier kernel estimator (spec
// §4.5), as opposed to the circular gradients used by the L0 image
// predictor (spec §4.4).
func Gradients[T Real](u *Image[T]) (gx, gy *Image[T]) {
	gx = New[T](u.W, u.H, u.D)
	gy = New[T](u.W, u.H, u.D)
	for l := 0; l < u.D; l++ {
		for y := 0; y < u.H; y++ {
			for x := 0; x < u.W-1; x++ {
				gx.Set(x, y, l, u.At(x+1, y, l)-u.At(x, y, l))
			}
		}
		for y := 0; y < u.H-1; y++ {
			for x := 0; x < u.W; x++ {
				gy.Set(x, y, l, u.At(x, y+1, l)-u.At(x, y, l))
			}
		}
	}
	return gx, gy
}

// CircularGradients computes the forward-difference gradients of u
// with wrap-around at the borders, matching utils::circular_gradients.
func CircularGradients[T Real](u *Image[T]) (gx, gy *Image[T]) {
	gx = New[T](u.W, u.H, u.D)
	gy = New[T](u.W, u.H, u.D)
	w, h := u.W, u.H
	for l := 0; l < u.D; l++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				gx.Set(x, y, l, u.At((x+1)%w, y, l)-u.At(x, y, l))
			}
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				gy.Set(x, y, l, u.At(x, (y+1)%h, l)-u.At(x, y, l))
			}
		}
	}
	return gx, gy
}

// CircularDivergence computes the backward-difference divergence of
// the vector field (gx, gy) with wrap-around at the borders, matching
// utils::circular_divergence.
func CircularDivergence[T Real](gx, gy *Image[T]) *Image[T] {
	w, h, d := gx.W, gx.H, gx.D
	out := New[T](w, h, d)
	for l := 0; l < d; l++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				xm := (x - 1 + w) % w
				ym := (y - 1 + h) % h
				v := (gx.At(x, y, l) - gx.At(xm, y, l)) + (gy.At(x, y, l) - gy.At(x, ym, l))
				out.Set(x, y, l, v)
			}
		}
	}
	return out
}
