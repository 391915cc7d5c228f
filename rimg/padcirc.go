package rimg

// PadCirc places kernel into out with its geometric center mapped to
// position (0, 0) of out (wrap-around placement), the layout required
// to obtain the optical transfer function via a forward FFT. out must
// already be sized to the target (W, H, D); it is zero-filled first.
// If kernel has a single channel and out has more, the kernel is
// broadcast to every channel of out. Ports img_t::padcirc verbatim.
func PadCirc[T Real](out, kernel *Image[T]) {
	out.Fill(0)
	ww := kernel.W / 2
	hh := kernel.H / 2
	w, h := out.W, out.H
	for dd := 0; dd < out.D; dd++ {
		od := dd
		if kernel.D == 1 {
			od = 0
		}
		for y := 0; y < hh; y++ {
			for x := 0; x < ww; x++ {
				out.Set(w-ww+x, h-hh+y, dd, kernel.At(x, y, od))
			}
			for x := ww; x < kernel.W; x++ {
				out.Set(-ww+x, h-hh+y, dd, kernel.At(x, y, od))
			}
		}
		for y := hh; y < kernel.H; y++ {
			for x := 0; x < ww; x++ {
				out.Set(w-ww+x, -hh+y, dd, kernel.At(x, y, od))
			}
			for x := ww; x < kernel.W; x++ {
				out.Set(-ww+x, -hh+y, dd, kernel.At(x, y, od))
			}
		}
	}
}
