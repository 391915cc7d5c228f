// Package tvdeconv implements the split-Bregman total-variation
// non-blind deconvolution solver (spec §4.7). It is called separately
// from the blind estimation loop, once, on the full-resolution
// original image with the kernel the loop returned.
package tvdeconv

// Tolerance is the fixed split-Bregman convergence tolerance (spec
// §4.7: "convergence tolerance fixed at 1e-6"). It is not exposed as
// an Option because the spec fixes it, not the caller.
const Tolerance = 1e-6

// Options configures DeconvBregman. Lambda and Gamma1 correspond to
// the CLI's --alpha and --beta flags respectively (deconv.cpp passes
// opts.alpha as lambda and opts.beta as gamma1 to the original
// tvreg-based solver).
type Options struct {
	Lambda     float32 // data-fidelity weight against the blurry observation.
	Gamma1     float32 // split-Bregman coupling weight between u and its gradient.
	Iterations int     // outer iteration budget; the solver may stop earlier on convergence.
}
