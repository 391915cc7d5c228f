package imageio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

func New3x3Kernel() *rimg.Image[float32] {
	k := rimg.New[float32](3, 3, 1)
	for i := range k.Pix {
		k.Pix[i] = float32(i) / 9
	}
	return k
}

func TestReadKernelMatrixParsesCommentsAndWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k.txt")
	content := "# a 3x2 test kernel\n0.1  0.2 0.3\n# a comment line between rows is not data\n0.4\t0.5\t0.6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	k, err := ReadKernelMatrix(path)
	if err != nil {
		t.Fatalf("ReadKernelMatrix: %v", err)
	}
	if k.W != 3 || k.H != 2 {
		t.Fatalf("kernel shape = %dx%d, want 3x2", k.W, k.H)
	}
	if k.At(0, 0, 0) != 0.1 || k.At(2, 1, 0) != 0.6 {
		t.Fatalf("unexpected kernel contents: %v", k.Pix)
	}
}

func TestReadKernelMatrixRejectsUnequalColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k.txt")
	content := "0.1 0.2 0.3\n0.4 0.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadKernelMatrix(path); err == nil {
		t.Fatalf("ReadKernelMatrix: expected an error for unequal row lengths")
	}
}

func TestWriteThenReadKernelMatrixRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k.txt")

	k := New3x3Kernel()
	if err := WriteKernelMatrix(path, k); err != nil {
		t.Fatalf("WriteKernelMatrix: %v", err)
	}
	got, err := ReadKernelMatrix(path)
	if err != nil {
		t.Fatalf("ReadKernelMatrix: %v", err)
	}
	if got.W != k.W || got.H != k.H {
		t.Fatalf("round trip shape = %dx%d, want %dx%d", got.W, got.H, k.W, k.H)
	}
	for i := range k.Pix {
		if got.Pix[i] != k.Pix[i] {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, got.Pix[i], k.Pix[i])
		}
	}
}
