// Package pyramid builds the Gaussian pyramid of the blurry input and
// drives the coarse-to-fine multiscale kernel estimation (spec §4.2).
package pyramid

import (
	"math"

	"github.com/planetlabs/deblur/rimg"
)

// Level is one entry of the pyramid: a downsampled image paired with
// the kernel size to estimate at that scale.
type Level struct {
	Image      *rimg.Image[float32]
	KernelSize int
}

// nextKernelSize computes ks_{i+1} from ks_i per spec §3: scaled by
// scaleFactor, rounded UP to the next odd integer.
func nextKernelSize(ks int, scaleFactor float64) int {
	n := int(math.Ceil(float64(ks) * scaleFactor))
	if n%2 == 0 {
		n++
	}
	return n
}

// Build constructs the pyramid of v, finest (index 0) to coarsest
// (last index). Every level visited is pushed, including the one
// whose width or height first reaches 1 — that level is still a valid
// pyramid entry, it is simply where downsampling stops. A level is
// never created with a kernel size below 3, since no valid odd kernel
// exists there; the pyramid stops growing one level earlier in that
// case instead.
func Build(v *rimg.Image[float32], ks int, scaleFactor float64, resampleOpts ResampleOptions) []Level {
	var levels []Level

	cur := v
	curKS := ks
	for {
		levels = append(levels, Level{Image: cur, KernelSize: curKS})

		if cur.W == 1 || cur.H == 1 {
			break
		}

		nextKS := nextKernelSize(curKS, scaleFactor)
		if nextKS < 3 {
			break
		}

		cur = GaussianDownsample(cur, 1/scaleFactor, resampleOpts)
		curKS = nextKS
	}
	return levels
}
