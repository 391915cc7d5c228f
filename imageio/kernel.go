package imageio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/planetlabs/deblur/rimg"
)

// ReadKernelMatrix reads a kernel from a whitespace-separated text
// matrix: rows are separated by newlines, entries by whitespace, '#'
// begins a line comment, and every row must have the same column
// count (spec §6). Blank and comment-only lines are skipped entirely
// rather than counted as empty rows.
func ReadKernelMatrix(path string) (*rimg.Image[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ErrIO{"open", path, err}
	}
	defer f.Close()

	var rows [][]float32
	cols := -1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float32, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, &ErrIO{"parse", path, fmt.Errorf("row %d: %q: %w", len(rows), tok, err)}
			}
			row[i] = float32(v)
		}
		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, &ErrIO{"parse", path, fmt.Errorf("row %d has %d columns, want %d", len(rows), len(row), cols)}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ErrIO{"read", path, err}
	}
	if len(rows) == 0 {
		return nil, &ErrIO{"parse", path, fmt.Errorf("no rows found")}
	}

	kw, kh := cols, len(rows)
	out := rimg.New[float32](kw, kh, 1)
	for y, row := range rows {
		for x, v := range row {
			out.Set(x, y, 0, v)
		}
	}
	return out, nil
}

// WriteKernelMatrix writes kernel in the same whitespace-separated
// text matrix format ReadKernelMatrix reads, one row per line, entries
// separated by a single space.
func WriteKernelMatrix(path string, kernel *rimg.Image[float32]) error {
	f, err := os.Create(path)
	if err != nil {
		return &ErrIO{"create", path, err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for y := 0; y < kernel.H; y++ {
		for x := 0; x < kernel.W; x++ {
			if x > 0 {
				if _, err := w.WriteString(" "); err != nil {
					return &ErrIO{"write", path, err}
				}
			}
			if _, err := w.WriteString(strconv.FormatFloat(float64(kernel.At(x, y, 0)), 'g', -1, 32)); err != nil {
				return &ErrIO{"write", path, err}
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return &ErrIO{"write", path, err}
		}
	}
	return w.Flush()
}

// LooksLikeKernelMatrix reports whether path's content looks like a
// whitespace-separated text matrix rather than a raster image format,
// by checking that the first bytes of the file are not a known image
// magic number (PNG, JPEG, TIFF). Used by the deconvolve CLI to decide
// which reader to call for its input_kernel argument, matching spec §6's "read a kernel as
// either an image or a whitespace-separated text matrix".
func LooksLikeKernelMatrix(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, &ErrIO{"open", path, err}
	}
	defer f.Close()

	var magic [4]byte
	n, err := f.Read(magic[:])
	if n == 0 {
		return false, &ErrIO{"read", path, err}
	}

	switch {
	case magic[0] == 0x89 && magic[1] == 'P' && magic[2] == 'N' && magic[3] == 'G': // PNG
		return false, nil
	case magic[0] == 0xff && magic[1] == 0xd8: // JPEG
		return false, nil
	case magic[0] == 'I' && magic[1] == 'I', magic[0] == 'M' && magic[1] == 'M': // TIFF (little/big endian)
		return false, nil
	default:
		return true, nil
	}
}
