package taper

import "github.com/planetlabs/deblur/rimg"

// AddPadding pads f with replicated borders of size (kw-1, kh-1),
// (kw-1)/2 on the left/top and the remainder on the right/bottom,
// where (kw, kh) are the kernel's dimensions. Ports utils::add_padding.
func AddPadding(f, kernel *rimg.Image[float32]) *rimg.Image[float32] {
	kw2, kh2 := kernel.W/2, kernel.H/2
	out := rimg.New[float32](f.W+kernel.W-1, f.H+kernel.H-1, f.D)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			for d := 0; d < f.D; d++ {
				out.Set(x+kw2, y+kh2, d, f.At(x, y, d))
			}
		}
	}

	for y := 0; y < kh2; y++ {
		for x := 0; x < out.W; x++ {
			for l := 0; l < out.D; l++ {
				out.Set(x, y, l, out.At(x, kh2, l))
				out.Set(x, out.H-1-y, l, out.At(x, out.H-1-kh2, l))
			}
		}
	}
	for y := 0; y < out.H; y++ {
		for x := 0; x < kw2; x++ {
			for l := 0; l < out.D; l++ {
				out.Set(x, y, l, out.At(kw2, y, l))
				out.Set(out.W-1-x, y, l, out.At(out.W-1-kw2, y, l))
			}
		}
	}
	return out
}

// RemovePadding undoes AddPadding. It deliberately uses kernel.W/2 for
// both axes rather than kernel.H/2 for the vertical one — a bug in
// the original implementation (utils::remove_padding) that spec §9
// says must be preserved rather than corrected.
func RemovePadding(f, kernel *rimg.Image[float32]) *rimg.Image[float32] {
	w2 := kernel.W / 2
	h2 := kernel.W / 2 // faithful to the original: not kernel.H/2
	out := rimg.New[float32](f.W-2*w2, f.H-2*h2, f.D)
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			for l := 0; l < out.D; l++ {
				out.Set(x, y, l, f.At(x+w2, y+h2, l))
			}
		}
	}
	return out
}
