// Package fftplan is the process-wide FFT plan cache. It maps
// (width, height, channels) to a synthesized FFTW plan, synthesizing
// on first use and serializing synthesis with a mutex, exactly as
// spec §5 and §9 describe. Plans are never evicted during the process
// lifetime, a deliberate carry-over from the original source's "don't
// free the plan" design (see fft.hpp's plan_t destructors, which
// return before destroying anything).
//
// The underlying transform library (github.com/jvlmdr/go-fftw/fftw,
// the teacher's own FFT binding) only exposes double-precision
// complex128 arrays, so a Plan round-trips single-precision spectra
// through complex128 scratch buffers internally; the public contract
// stays single precision, matching spec §1's FFT provider contract.
package fftplan

import (
	"fmt"
	"sync"

	"github.com/jvlmdr/go-fftw/fftw"

	"github.com/planetlabs/deblur/rimg"
)

// ErrPlanCreation is returned when the underlying FFTW binding fails
// to synthesize a plan. Spec §7 treats this as fatal, equivalent to
// out-of-memory; callers that want to surface it instead of crashing
// should check for this error explicitly.
type ErrPlanCreation struct {
	W, H, D int
	Err     error
}

func (e *ErrPlanCreation) Error() string {
	return fmt.Sprintf("fftplan: failed to create plan for %dx%dx%d: %v", e.W, e.H, e.D, e.Err)
}

func (e *ErrPlanCreation) Unwrap() error { return e.Err }

type dims struct {
	w, h, d int
}

// Plan executes forward and inverse complex-to-complex transforms for
// one (W, H, D) shape. It is safe for concurrent use once returned
// from the cache: FFTW plans created with a fixed array may execute
// concurrently on other same-shaped data, but this Plan serializes its
// own executions against its private scratch buffer with execMu.
type Plan struct {
	w, h, d int
	scratch *fftw.Array2
	execMu  sync.Mutex
}

// Dims returns the shape this plan was synthesized for.
func (p *Plan) Dims() (w, h, d int) { return p.w, p.h, p.d }

// Forward computes the forward (non-normalized) 2D DFT of every
// channel of s in place.
func (p *Plan) Forward(s *rimg.Spectrum) error {
	return p.exec(s, false)
}

// Backward computes the inverse (non-normalized) 2D DFT of every
// channel of s in place, then applies the 1/(W*H) normalization
// factor, matching the FFT convention in spec §3.
func (p *Plan) Backward(s *rimg.Spectrum) error {
	return p.exec(s, true)
}

func (p *Plan) exec(s *rimg.Spectrum, inverse bool) error {
	if s.W != p.w || s.H != p.h || s.D != p.d {
		return &rimg.ErrDimensionMismatch{Op: "fftplan.Plan.exec", W1: p.w, H1: p.h, D1: p.d, W2: s.W, H2: s.H, D2: s.D}
	}
	p.execMu.Lock()
	defer p.execMu.Unlock()

	norm := complex64(complex(1.0/float32(p.w*p.h), 0))
	for ch := 0; ch < p.d; ch++ {
		for y := 0; y < p.h; y++ {
			for x := 0; x < p.w; x++ {
				p.scratch.Set(x, y, complex(float64(real(s.At(x, y, ch))), float64(imag(s.At(x, y, ch)))))
			}
		}
		if inverse {
			fftw.IFFT2To(p.scratch, p.scratch)
		} else {
			fftw.FFT2To(p.scratch, p.scratch)
		}
		for y := 0; y < p.h; y++ {
			for x := 0; x < p.w; x++ {
				v := p.scratch.At(x, y)
				c := complex64(complex(float32(real(v)), float32(imag(v))))
				if inverse {
					c *= norm
				}
				s.Set(x, y, ch, c)
			}
		}
	}
	return nil
}

var (
	cacheMu sync.Mutex
	cache   = map[dims]*Plan{}
)

// Get returns the cached plan for (w, h, d), synthesizing it on first
// use. Synthesis is serialized across the whole process by cacheMu;
// once returned, Plan.Forward/Backward may be called concurrently by
// different callers (each Plan still serializes its own executions,
// since it owns one scratch buffer).
func Get(w, h, d int) (*Plan, error) {
	key := dims{w, h, d}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if p, ok := cache[key]; ok {
		return p, nil
	}
	scratch := fftw.NewArray2(w, h)
	if scratch == nil {
		return nil, &ErrPlanCreation{W: w, H: h, D: d}
	}
	p := &Plan{w: w, h: h, d: d, scratch: scratch}
	cache[key] = p
	return p, nil
}
