// Package deblur implements the blind-kernel-estimation core: the
// alternating minimization inner loop (spec §4.3), the L0-gradient
// sharp-image predictor (§4.4), the Fourier-domain kernel estimator
// (§4.5), and the preprocessing step that feeds them (§4.8).
package deblur

import "fmt"

// Options enumerates the configuration consumed by the core, matching
// spec §3's Options list exactly.
type Options struct {
	KS                 int
	Lambda             float32
	LambdaRatio        float32
	LambdaMin          float32
	Gamma              float32
	Iterations         int
	Multiscale         bool
	ScaleFactor        float64
	KernelThresholdMax float32
	RemoveIsolated     bool
}

// DefaultOptions returns the defaults documented for the kernel
// estimator CLI (spec §6).
func DefaultOptions() Options {
	return Options{
		Lambda:             4e-3,
		LambdaRatio:        0.909,
		LambdaMin:          1e-4,
		Gamma:              20,
		Iterations:         5,
		Multiscale:         true,
		ScaleFactor:        0.5,
		KernelThresholdMax: 0.05,
		RemoveIsolated:     true,
	}
}

// ErrInvalidOptions reports a configuration error (spec §7's
// "Configuration error" kind: invalid flag value, non-odd ks, etc).
type ErrInvalidOptions struct {
	Field string
	Msg   string
}

func (e *ErrInvalidOptions) Error() string {
	return fmt.Sprintf("deblur: invalid option %s: %s", e.Field, e.Msg)
}

// Validate checks every field against the domain spec §3 documents
// and returns the first violation found, wrapped as *ErrInvalidOptions.
func (o Options) Validate() error {
	if o.KS < 3 || o.KS%2 == 0 {
		return &ErrInvalidOptions{"ks", "must be odd and >= 3"}
	}
	if o.Lambda <= 0 {
		return &ErrInvalidOptions{"lambda", "must be > 0"}
	}
	if o.LambdaRatio <= 0 || o.LambdaRatio > 1 {
		return &ErrInvalidOptions{"lambda_ratio", "must be in (0, 1]"}
	}
	if o.LambdaMin <= 0 {
		return &ErrInvalidOptions{"lambda_min", "must be > 0"}
	}
	if o.Gamma <= 0 {
		return &ErrInvalidOptions{"gamma", "must be > 0"}
	}
	if o.Iterations < 1 {
		return &ErrInvalidOptions{"iterations", "must be >= 1"}
	}
	if o.ScaleFactor <= 0 || o.ScaleFactor >= 1 {
		return &ErrInvalidOptions{"scale_factor", "must be in (0, 1)"}
	}
	if o.KernelThresholdMax < 0 || o.KernelThresholdMax >= 1 {
		return &ErrInvalidOptions{"kernel_threshold_max", "must be in [0, 1)"}
	}
	return nil
}
