package pyramid

import (
	"github.com/planetlabs/deblur/deblur"
	"github.com/planetlabs/deblur/rimg"
)

// Run drives the coarse-to-fine multiscale kernel estimation of spec
// §4.2: build the pyramid of v, initialize u at the coarsest level,
// then for each scale from coarsest to finest run the alternating
// inner loop and bilinearly upsample u to the next finer level before
// continuing.
//
// When opts.Multiscale is false the pyramid has exactly one level
// (the original resolution), and Run degenerates to a single call to
// deblur.AlternatingLoop.
func Run(v *rimg.Image[float32], opts *deblur.Options, debug deblur.DebugSink, resampleOpts ResampleOptions) (k, u *rimg.Image[float32], err error) {
	var levels []Level
	if opts.Multiscale {
		levels = Build(v, opts.KS, opts.ScaleFactor, resampleOpts)
	} else {
		levels = []Level{{Image: v, KernelSize: opts.KS}}
	}

	n := len(levels)
	u = levels[n-1].Image

	debugOffset := 0
	for s := n - 1; s >= 0; s-- {
		opts.KS = levels[s].KernelSize

		k, u, err = deblur.AlternatingLoop(levels[s].Image, u, opts, debug, debugOffset)
		if err != nil {
			return nil, nil, err
		}
		debugOffset += opts.Iterations

		if s > 0 {
			next := levels[s-1].Image
			u = Upsample(u, next.W, next.H)
		}
	}
	return k, u, nil
}
