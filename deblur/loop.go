package deblur

import (
	"github.com/planetlabs/deblur/kernelpost"
	"github.com/planetlabs/deblur/rimg"
)

// DebugSink receives per-iteration snapshots of the alternating
// loop's state when debugging is enabled. Implementations own
// however they persist v, u and k (e.g. as TIFFs); the core itself
// stays free of any filesystem dependency, and the caller supplies a
// monotonically increasing counter rather than the source's
// function-local static counter (spec §9's global-mutable-counter
// guidance).
type DebugSink interface {
	Dump(iteration int, v, u, k *rimg.Image[float32])
}

// AlternatingLoop implements spec §4.3: the inner alternating
// minimization at a single scale. At each outer step it estimates the
// kernel first from the current sharp-image estimate, then refines
// the sharp image from that kernel, decaying lambda on a monotone
// non-increasing schedule floored at opts.LambdaMin. opts.Lambda is
// updated in place.
//
// debugOffset numbers the first iteration this call will dump, so a
// caller driving several scales can keep a single increasing sequence
// across calls without any shared mutable state.
func AlternatingLoop(v, u0 *rimg.Image[float32], opts *Options, debug DebugSink, debugOffset int) (k, u *rimg.Image[float32], err error) {
	predictor, err := NewL0ImagePredictor(v)
	if err != nil {
		return nil, nil, err
	}
	estimator, err := NewFourierKernelEstimator(v, opts.KS)
	if err != nil {
		return nil, nil, err
	}

	u = u0
	if opts.Lambda < opts.LambdaMin {
		opts.Lambda = opts.LambdaMin
	}
	postOpts := kernelpost.Options{ThresholdMax: opts.KernelThresholdMax, RemoveIsolated: opts.RemoveIsolated}

	for i := 0; i < opts.Iterations; i++ {
		k, err = estimator.Estimate(u, opts.Gamma, postOpts)
		if err != nil {
			return nil, nil, err
		}
		u, err = predictor.Predict(k, opts.Lambda, 2*opts.Lambda, 2, 1e5)
		if err != nil {
			return nil, nil, err
		}

		opts.Lambda *= opts.LambdaRatio
		if opts.Lambda < opts.LambdaMin {
			opts.Lambda = opts.LambdaMin
		}

		if debug != nil {
			debug.Dump(debugOffset+i+1, v, u, k)
		}
	}
	return k, u, nil
}
