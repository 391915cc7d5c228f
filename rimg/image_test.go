package rimg

import "testing"

func TestSumMaxMin(t *testing.T) {
	im := New[float32](2, 2, 1)
	im.Pix = []float32{1, 2, 3, 4}
	if got := im.Sum(); got != 10 {
		t.Errorf("Sum() = %v, want 10", got)
	}
	if got := im.Max(); got != 4 {
		t.Errorf("Max() = %v, want 4", got)
	}
	if got := im.Min(); got != 1 {
		t.Errorf("Min() = %v, want 1", got)
	}
}

func TestCircularGradientsAndDivergenceShapes(t *testing.T) {
	im := New[float32](4, 3, 1)
	for i := range im.Pix {
		im.Pix[i] = float32(i)
	}
	gx, gy := CircularGradients(im)
	if !gx.SameSize(im) || !gy.SameSize(im) {
		t.Fatalf("gradient shapes do not match input")
	}
	div := CircularDivergence(gx, gy)
	if !div.SameSize(im) {
		t.Fatalf("divergence shape does not match input")
	}
}

func TestGradientsZeroBorder(t *testing.T) {
	im := New[float32](3, 3, 1)
	for i := range im.Pix {
		im.Pix[i] = float32(i + 1)
	}
	gx, gy := Gradients(im)
	for y := 0; y < im.H; y++ {
		if gx.At(im.W-1, y, 0) != 0 {
			t.Fatalf("gx last column should be zero")
		}
	}
	for x := 0; x < im.W; x++ {
		if gy.At(x, im.H-1, 0) != 0 {
			t.Fatalf("gy last row should be zero")
		}
	}
}

func TestShiftIShiftRoundTrip(t *testing.T) {
	for _, dims := range [][2]int{{5, 5}, {6, 4}, {1, 1}, {8, 3}} {
		im := New[float32](dims[0], dims[1], 2)
		for i := range im.Pix {
			im.Pix[i] = float32(i)
		}
		out := IShift(Shift(im))
		for i := range im.Pix {
			if out.Pix[i] != im.Pix[i] {
				t.Fatalf("dims %v: shift/ishift not identity at %d", dims, i)
			}
		}
	}
}

func TestPadCircBroadcastsSingleChannelKernel(t *testing.T) {
	k := New[float32](1, 1, 1)
	k.Set(0, 0, 0, 5)
	out := New[float32](4, 4, 3)
	PadCirc(out, k)
	for d := 0; d < 3; d++ {
		if out.At(0, 0, d) != 5 {
			t.Fatalf("channel %d: expected broadcast kernel mass at origin", d)
		}
	}
}
