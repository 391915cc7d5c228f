package pyramid

import (
	"math"

	"github.com/planetlabs/deblur/rimg"
)

// resizeBilinear resamples in to (outW, outH) with separable bilinear
// interpolation directly on float32 samples. Out-of-bounds source
// coordinates are clamped to the nearest edge index, but sample
// values themselves are never clamped to any range: this matches
// downscale.c's interpolate_float_image_bilinearly and its
// extend_float_image_constant border rule, which never requantizes or
// clips intermediate values through a color model. Both the
// Gaussian-blurred images GaussianDownsample feeds in and the
// mid-optimization sharp estimate Upsample feeds in can legitimately
// fall outside [0, 1].
func resizeBilinear(in *rimg.Image[float32], outW, outH int) *rimg.Image[float32] {
	out := rimg.New[float32](outW, outH, in.D)
	factorX := float64(in.W) / float64(outW)
	factorY := float64(in.H) / float64(outH)

	clamp := func(i, n int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}

	for j := 0; j < outH; j++ {
		y := factorY * float64(j)
		jj := int(math.Floor(y))
		fy := float32(y - math.Floor(y))
		j0, j1 := clamp(jj, in.H), clamp(jj+1, in.H)

		for i := 0; i < outW; i++ {
			x := factorX * float64(i)
			ii := int(math.Floor(x))
			fx := float32(x - math.Floor(x))
			i0, i1 := clamp(ii, in.W), clamp(ii+1, in.W)

			for d := 0; d < in.D; d++ {
				a := in.At(i0, j0, d)
				b := in.At(i0, j1, d)
				c := in.At(i1, j0, d)
				e := in.At(i1, j1, d)
				v := a*(1-fx)*(1-fy) + b*(1-fx)*fy + c*fx*(1-fy) + e*fx*fy
				out.Set(i, j, d, v)
			}
		}
	}
	return out
}
