package tvdeconv

import (
	"math"
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

func seededImage(w, h, d int) *rimg.Image[float32] {
	im := rimg.New[float32](w, h, d)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for l := 0; l < d; l++ {
				v := float32(0.5 + 0.3*math.Sin(float64(x)/3)*math.Cos(float64(y)/5))
				im.Set(x, y, l, v)
			}
		}
	}
	return im
}

func deltaKernel(size int) *rimg.Image[float32] {
	k := rimg.New[float32](size, size, 1)
	k.Set(size/2, size/2, 0, 1)
	return k
}

func TestDeconvBregmanPreservesDimensions(t *testing.T) {
	f := seededImage(32, 24, 1)
	k := deltaKernel(5)
	opts := Options{Lambda: 3000, Gamma1: 30, Iterations: 7}

	u, err := DeconvBregman(f, k, opts)
	if err != nil {
		t.Fatalf("DeconvBregman: %v", err)
	}
	if !u.SameSize(f) {
		t.Fatalf("output size = %dx%dx%d, want %dx%dx%d", u.W, u.H, u.D, f.W, f.H, f.D)
	}
}

func TestDeconvBregmanIdentityKernelStaysClose(t *testing.T) {
	f := seededImage(32, 32, 1)
	k := deltaKernel(3)
	// A strong fidelity weight relative to the split weight should keep
	// the restored image close to the (already sharp, since K is the
	// identity) observation.
	opts := Options{Lambda: 1e4, Gamma1: 1, Iterations: 10}

	u, err := DeconvBregman(f, k, opts)
	if err != nil {
		t.Fatalf("DeconvBregman: %v", err)
	}

	var sqErr float64
	for i := range f.Pix {
		d := float64(u.Pix[i] - f.Pix[i])
		sqErr += d * d
	}
	rms := math.Sqrt(sqErr / float64(len(f.Pix)))
	if rms > 0.2 {
		t.Fatalf("RMS distance from input = %v, want <= 0.2 under an identity kernel with dominant fidelity weight", rms)
	}
}

func TestDeconvBregmanMultiChannel(t *testing.T) {
	f := seededImage(16, 16, 3)
	k := deltaKernel(3)
	opts := Options{Lambda: 3000, Gamma1: 30, Iterations: 5}

	u, err := DeconvBregman(f, k, opts)
	if err != nil {
		t.Fatalf("DeconvBregman: %v", err)
	}
	if u.D != 3 {
		t.Fatalf("output channels = %d, want 3", u.D)
	}
}
