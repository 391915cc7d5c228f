package imageio

import (
	"path/filepath"
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

func TestWriteThenReadPNGRoundTripsWithinQuantization(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "im.png")

	im := rimg.New[float32](8, 6, 1)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			im.Set(x, y, 0, float32(x+y)/float32(im.W+im.H))
		}
	}

	if err := WriteImage(path, im); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.W != im.W || got.H != im.H {
		t.Fatalf("round trip shape = %dx%dx%d, want %dx%dx%d", got.W, got.H, got.D, im.W, im.H, im.D)
	}
	for i := range im.Pix {
		diff := got.Pix[i] - im.Pix[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1.0/200 {
			t.Fatalf("round trip sample %d = %v, want close to %v", i, got.Pix[i], im.Pix[i])
		}
	}
}

func TestExtSelectsCodecByExtension(t *testing.T) {
	cases := map[string]string{
		"foo.PNG":  "png",
		"a/b.Jpeg": "jpeg",
		"k.tif":    "tif",
		"noext":    "",
	}
	for path, want := range cases {
		if got := ext(path); got != want {
			t.Fatalf("ext(%q) = %q, want %q", path, got, want)
		}
	}
}
