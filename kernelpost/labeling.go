// Package kernelpost implements the kernel post-processing pipeline
// applied after every kernel estimate (spec §4.6): clamp, relative
// threshold, isolated-component pruning, centroid re-centering and
// normalization.
package kernelpost

import "github.com/planetlabs/deblur/rimg"

// labels computes 8-connected components over the support (nonzero
// entries) of k using two-pass union-find, iteratively path-compressed
// rather than recursively (spec §9: "represent as an index array and
// path-compress iteratively rather than recursively"). It returns one
// label per pixel; label 0 means "background" (zero-valued pixel).
func labels(k *rimg.Image[float32]) []int {
	w, h := k.W, k.H
	lab := make([]int, w*h)
	// equiv[i] is the provisional parent of label i; equiv[i] == i at
	// the root of its tree.
	equiv := []int{0}
	nextLabel := 0

	idx := func(x, y int) int { return x + y*w }

	find := func(l int) int {
		root := l
		for equiv[root] != root {
			root = equiv[root]
		}
		// Path compression: point every visited node directly at root.
		for equiv[l] != root {
			next := equiv[l]
			equiv[l] = root
			l = next
		}
		return root
	}

	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if ra < rb {
				equiv[rb] = ra
			} else {
				equiv[ra] = rb
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if k.At(x, y, 0) == 0 {
				continue
			}
			var neighbors []int
			if y > 0 && x > 0 {
				if l := lab[idx(x-1, y-1)]; l != 0 {
					neighbors = append(neighbors, l)
				}
			}
			if y > 0 {
				if l := lab[idx(x, y-1)]; l != 0 {
					neighbors = append(neighbors, l)
				}
			}
			if y > 0 && x < w-1 {
				if l := lab[idx(x+1, y-1)]; l != 0 {
					neighbors = append(neighbors, l)
				}
			}
			if x > 0 {
				if l := lab[idx(x-1, y)]; l != 0 {
					neighbors = append(neighbors, l)
				}
			}

			if len(neighbors) == 0 {
				nextLabel++
				equiv = append(equiv, nextLabel)
				lab[idx(x, y)] = nextLabel
				continue
			}
			min := neighbors[0]
			for _, n := range neighbors[1:] {
				if n < min {
					min = n
				}
			}
			lab[idx(x, y)] = min
			for _, n := range neighbors {
				union(n, min)
			}
		}
	}

	for i, l := range lab {
		if l != 0 {
			lab[i] = find(l)
		}
	}
	return lab
}

// componentMass sums k's values within each connected component.
func componentMass(lab []int, k *rimg.Image[float32]) map[int]float32 {
	sums := map[int]float32{}
	for i, l := range lab {
		sums[l] += k.Pix[i]
	}
	return sums
}
