// Package rimg implements the dense strided image container that the
// blind-deblurring core is built on: a rectangular array of W*H*D
// samples, channel-interleaved, generic over the real sample type.
//
// It plays the role that img_t<T> plays in the original C++ core
// (image.hpp): arithmetic reductions, resize-in-place, gradient and
// wrap-around placement operators, but expressed with Go generics
// instead of C++ templates so the element type is monomorphized by the
// compiler rather than dispatched dynamically.
package rimg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Real is the set of sample types an Image can hold. The core
// concretely instantiates Image[float32] throughout (the spec's
// "single-precision real" data model); Image[float64] is available to
// satisfy the same algorithms at double precision without any further
// code, mirroring the original source's template over {float, double}.
type Real interface {
	~float32 | ~float64
}

// ErrDimensionMismatch is returned wherever two images or an image and
// a kernel are required to agree in width, height or channel count.
type ErrDimensionMismatch struct {
	Op          string
	W1, H1, D1  int
	W2, H2, D2  int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("rimg: %s: dimensions %dx%dx%d != %dx%dx%d", e.Op, e.W1, e.H1, e.D1, e.W2, e.H2, e.D2)
}

// Image is a dense, channel-interleaved W*H*D array. It is the
// exclusive property of whoever constructed it; operations documented
// as producing output take a destination Image and resize it in place.
type Image[T Real] struct {
	W, H, D int
	Pix     []T
}

// New allocates a zero-filled image of the given dimensions.
func New[T Real](w, h, d int) *Image[T] {
	return &Image[T]{W: w, H: h, D: d, Pix: make([]T, w*h*d)}
}

func (im *Image[T]) index(x, y, d int) int {
	return d + im.D*(x+y*im.W)
}

// At returns the sample at (x, y, channel d).
func (im *Image[T]) At(x, y, d int) T {
	return im.Pix[im.index(x, y, d)]
}

// Set stores a sample at (x, y, channel d).
func (im *Image[T]) Set(x, y, d int, v T) {
	im.Pix[im.index(x, y, d)] = v
}

// Resize changes the image's dimensions in place, reallocating the
// backing storage only when the total size changes. Existing content
// is not preserved across a resize (callers that need to keep content
// use Clone first).
func (im *Image[T]) Resize(w, h, d int) {
	im.W, im.H, im.D = w, h, d
	n := w * h * d
	if cap(im.Pix) < n {
		im.Pix = make([]T, n)
	} else {
		im.Pix = im.Pix[:n]
	}
}

// ResizeLike resizes im to match the dimensions of o.
func (im *Image[T]) ResizeLike(o *Image[T]) {
	im.Resize(o.W, o.H, o.D)
}

// Fill sets every sample to v.
func (im *Image[T]) Fill(v T) {
	for i := range im.Pix {
		im.Pix[i] = v
	}
}

// Clone returns a deep copy.
func (im *Image[T]) Clone() *Image[T] {
	out := &Image[T]{W: im.W, H: im.H, D: im.D, Pix: make([]T, len(im.Pix))}
	copy(out.Pix, im.Pix)
	return out
}

// CopyFrom copies the contents of o into im. Both must have identical
// dimensions.
func (im *Image[T]) CopyFrom(o *Image[T]) error {
	if !im.SameSize(o) {
		return &ErrDimensionMismatch{"CopyFrom", im.W, im.H, im.D, o.W, o.H, o.D}
	}
	copy(im.Pix, o.Pix)
	return nil
}

// SameSize reports whether im and o have identical W, H and D.
func (im *Image[T]) SameSize(o *Image[T]) bool {
	return im.W == o.W && im.H == o.H && im.D == o.D
}

// Sum returns the sum of all samples. The reduction order is a fixed
// left-to-right scan of Pix, so results are reproducible for a fixed
// input (per spec §5's reproducibility caveat on reduction order).
func (im *Image[T]) Sum() T {
	var s T
	for _, v := range im.Pix {
		s += v
	}
	return s
}

// Max returns the maximum sample value. Panics on an empty image.
func (im *Image[T]) Max() T {
	m := im.Pix[0]
	for _, v := range im.Pix[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the minimum sample value. Panics on an empty image.
func (im *Image[T]) Min() T {
	m := im.Pix[0]
	for _, v := range im.Pix[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Scale multiplies every sample by k in place. The elementwise scale
// itself is delegated to gonum/floats.Scale, through a float64 scratch
// buffer since floats operates on float64 while Image is generic over
// both real element types, the same concern the teacher's
// toepcov/vector.go hands to gonum/floats for its own vector type.
func (im *Image[T]) Scale(k T) {
	buf := toFloat64Buf(im.Pix)
	floats.Scale(float64(k), buf)
	fromFloat64Buf(im.Pix, buf)
}

// AddScaled adds k*o to im in place, elementwise, via
// gonum/floats.AddScaled. Both must have identical dimensions.
func (im *Image[T]) AddScaled(o *Image[T], k T) error {
	if !im.SameSize(o) {
		return &ErrDimensionMismatch{"AddScaled", im.W, im.H, im.D, o.W, o.H, o.D}
	}
	dst := toFloat64Buf(im.Pix)
	src := toFloat64Buf(o.Pix)
	floats.AddScaled(dst, float64(k), src)
	fromFloat64Buf(im.Pix, dst)
	return nil
}

func toFloat64Buf[T Real](pix []T) []float64 {
	buf := make([]float64, len(pix))
	for i, v := range pix {
		buf[i] = float64(v)
	}
	return buf
}

func fromFloat64Buf[T Real](dst []T, buf []float64) {
	for i, v := range buf {
		dst[i] = T(v)
	}
}

// Clamp clips every sample into [lo, hi] in place.
func (im *Image[T]) Clamp(lo, hi T) {
	for i, v := range im.Pix {
		if v < lo {
			im.Pix[i] = lo
		} else if v > hi {
			im.Pix[i] = hi
		}
	}
}

// Channel extracts channel d as a single-channel image.
func (im *Image[T]) Channel(d int) *Image[T] {
	out := New[T](im.W, im.H, 1)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.Set(x, y, 0, im.At(x, y, d))
		}
	}
	return out
}
