package kernelpost

import (
	"math"

	"github.com/planetlabs/deblur/rimg"
)

// Options configures the post-processing pipeline. It mirrors the
// relevant fields of spec §3's Options: ThresholdMax and
// RemoveIsolated.
type Options struct {
	ThresholdMax   float32
	RemoveIsolated bool
}

// Process applies the full post-processing pipeline to k in place, in
// the order spec §4.6 specifies: clamp negatives, relative threshold,
// isolated-component pruning, re-centering, normalization.
func Process(k *rimg.Image[float32], opts Options) {
	ClampNegative(k)
	if opts.ThresholdMax > 0 {
		Threshold(k, opts.ThresholdMax)
	}
	if opts.RemoveIsolated {
		RemoveIsolatedComponents(k)
	}
	Center(k)
	Normalize(k)
}

// ClampNegative zeros every negative entry. Ports the "enforce
// positivity" step.
func ClampNegative(k *rimg.Image[float32]) {
	for i, v := range k.Pix {
		if v < 0 {
			k.Pix[i] = 0
		}
	}
}

// Threshold zeros every entry below thresholdMax * max(k).
func Threshold(k *rimg.Image[float32], thresholdMax float32) {
	th := k.Max() * thresholdMax
	for i, v := range k.Pix {
		if v < th {
			k.Pix[i] = 0
		}
	}
}

// RemoveIsolatedComponents normalizes k to sum 1, computes 8-connected
// components of its support, and zeros every component whose mass is
// below 0.1. Ports utils::remove_isolated_cc. If k sums to zero, this
// is a no-op (there is no support to label).
func RemoveIsolatedComponents(k *rimg.Image[float32]) {
	sum := k.Sum()
	if sum == 0 {
		return
	}
	for i := range k.Pix {
		k.Pix[i] /= sum
	}
	lab := labels(k)
	mass := componentMass(lab, k)
	for i, l := range lab {
		if mass[l] < 0.1 {
			k.Pix[i] = 0
		}
	}
}

// Center translates k so its intensity centroid lands on the central
// pixel, rounding the centroid to the nearest integer offset and
// discarding content shifted out of bounds. Ports utils::center_kernel.
// If k sums to zero the centroid is undefined and Center is a no-op.
func Center(k *rimg.Image[float32]) {
	sum := k.Sum()
	if sum == 0 {
		return
	}
	var sx, sy float64
	for y := 0; y < k.H; y++ {
		for x := 0; x < k.W; x++ {
			v := float64(k.At(x, y, 0))
			sx += v * float64(x)
			sy += v * float64(y)
		}
	}
	dx := int(math.Round(sx / float64(sum)))
	dy := int(math.Round(sy / float64(sum)))

	orig := k.Clone()
	k.Fill(0)
	for y := 0; y < k.H; y++ {
		for x := 0; x < k.W; x++ {
			nx := x + dx - k.W/2
			ny := y + dy - k.H/2
			if nx >= 0 && nx < k.W && ny >= 0 && ny < k.H {
				k.Set(x, y, 0, orig.At(nx, ny, 0))
			}
		}
	}
}

// Normalize divides every entry by Sum(k), unless the sum is zero (the
// degenerate case), which is preserved unchanged rather than divided
// by zero — spec §7's explicit policy.
func Normalize(k *rimg.Image[float32]) {
	sum := k.Sum()
	if sum > 0 {
		for i := range k.Pix {
			k.Pix[i] /= sum
		}
	}
}

// CountComponents returns the number of distinct 8-connected
// components in the support of k (used by tests asserting the
// RemoveIsolated invariant).
func CountComponents(k *rimg.Image[float32]) int {
	lab := labels(k)
	seen := map[int]bool{}
	for _, l := range lab {
		if l != 0 {
			seen[l] = true
		}
	}
	return len(seen)
}
