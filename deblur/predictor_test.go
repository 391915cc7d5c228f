package deblur

import (
	"math"
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

func seededImage(w, h int) *rimg.Image[float32] {
	im := rimg.New[float32](w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 0.5 + 0.3*float32(math.Sin(float64(x)*0.9))*float32(math.Cos(float64(y)*0.7))
			im.Set(x, y, 0, v)
		}
	}
	return im
}

// deltaKernel returns an odd-sized kernel with all its mass on the
// center pixel: the identity point-spread function.
func deltaKernel(size int) *rimg.Image[float32] {
	k := rimg.New[float32](size, size, 1)
	k.Set(size/2, size/2, 0, 1)
	return k
}

func TestPredictIdentityKernelStaysNearV(t *testing.T) {
	v := seededImage(16, 16)
	p, err := NewL0ImagePredictor(v)
	if err != nil {
		t.Fatalf("NewL0ImagePredictor: %v", err)
	}
	k := deltaKernel(3)

	u, err := p.Predict(k, 4e-3, 8e-3, 2, 1e5)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !u.SameSize(v) {
		t.Fatalf("Predict returned %dx%d, want %dx%d", u.W, u.H, v.W, v.H)
	}

	var rms float64
	for i := range u.Pix {
		d := float64(u.Pix[i] - v.Pix[i])
		rms += d * d
	}
	rms = math.Sqrt(rms / float64(len(u.Pix)))
	if rms > 0.2 {
		t.Fatalf("Predict with identity kernel drifted too far from v: RMS = %v", rms)
	}
}
