package pyramid

import (
	"math"
	"testing"

	"github.com/planetlabs/deblur/deblur"
	"github.com/planetlabs/deblur/fftplan"
	"github.com/planetlabs/deblur/rimg"
)

// boxKernel returns a size x size uniform kernel summing to 1.
func boxKernel(size int) *rimg.Image[float32] {
	k := rimg.New[float32](size, size, 1)
	k.Fill(1 / float32(size*size))
	return k
}

// blockyImage is a deterministic, sharp-edged synthetic image: a
// thresholded sum of sinusoids, favorable to the L0 gradient-sparsity
// prior the predictor relies on.
func blockyImage(w, h int) *rimg.Image[float32] {
	im := rimg.New[float32](w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := math.Sin(float64(x)*0.35) + math.Cos(float64(y)*0.41)
			if v > 0 {
				im.Set(x, y, 0, 1)
			} else {
				im.Set(x, y, 0, 0)
			}
		}
	}
	return im
}

// circularConvolve blurs v by k under circular boundary conditions,
// matching the convolution model the kernel estimator itself assumes.
func circularConvolve(v, k *rimg.Image[float32]) (*rimg.Image[float32], error) {
	w, h, d := v.W, v.H, v.D
	kOtf, err := fftplan.PSF2OTF(k, w, h, 1)
	if err != nil {
		return nil, err
	}
	vf, err := fftplan.R2C(v)
	if err != nil {
		return nil, err
	}
	out := rimg.NewSpectrum(w, h, d)
	for l := 0; l < d; l++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, l, vf.At(x, y, l)*kOtf.At(x, y, 0))
			}
		}
	}
	return fftplan.C2R(out)
}

// correlation returns the Pearson correlation coefficient between two
// equal-length sample sets.
func correlation(a, b []float32) float64 {
	n := float64(len(a))
	var sa, sb float64
	for i := range a {
		sa += float64(a[i])
		sb += float64(b[i])
	}
	ma, mb := sa/n, sb/n

	var num, da, db float64
	for i := range a {
		x := float64(a[i]) - ma
		y := float64(b[i]) - mb
		num += x * y
		da += x * x
		db += y * y
	}
	den := math.Sqrt(da * db)
	if den == 0 {
		return 0
	}
	return num / den
}

// TestRunRecoversBoxKernel exercises spec §8 scenario 2 end to end:
// a sharp image convolved with a known 9x9 uniform box kernel should
// yield a recovered kernel whose peak sits at the center and which
// correlates with the true kernel at rho >= 0.9.
func TestRunRecoversBoxKernel(t *testing.T) {
	const ks = 9
	sharp := blockyImage(64, 64)
	trueKernel := boxKernel(ks)

	v, err := circularConvolve(sharp, trueKernel)
	if err != nil {
		t.Fatalf("circularConvolve: %v", err)
	}

	opts := deblur.DefaultOptions()
	opts.KS = ks
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	k, u, err := Run(v, &opts, nil, DefaultResampleOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if k.W != ks || k.H != ks {
		t.Fatalf("recovered kernel size = %dx%d, want %dx%d", k.W, k.H, ks, ks)
	}
	if !u.SameSize(v) {
		t.Fatalf("recovered sharp image size = %dx%dx%d, want %dx%dx%d", u.W, u.H, u.D, v.W, v.H, v.D)
	}

	cx, cy := k.W/2, k.H/2
	peakX, peakY := 0, 0
	peak := float32(-1)
	for y := 0; y < k.H; y++ {
		for x := 0; x < k.W; x++ {
			if p := k.At(x, y, 0); p > peak {
				peak, peakX, peakY = p, x, y
			}
		}
	}
	if peakX != cx || peakY != cy {
		t.Fatalf("recovered kernel peak at (%d,%d), want center (%d,%d)", peakX, peakY, cx, cy)
	}

	rho := correlation(k.Pix, trueKernel.Pix)
	if rho < 0.9 {
		t.Fatalf("correlation with true box kernel = %v, want >= 0.9", rho)
	}
}
