package fftplan

import "sync"

// optimalSizeLimit is the largest size covered by the 7-smooth lookup
// table: OptimalSizeUp returns a size above this unchanged (ported from
// fft::get_optimal_table's silent fallback, preserved per spec §9's
// open question), while OptimalSizeDown searches downward from the
// limit, so it returns 4096 for any larger size. The table itself spans [0, optimalSizeLimit], so it
// holds optimalSizeLimit+1 entries — 4096 = 2^12 must be representable,
// per the worked FFT-optimal-crop scenario in spec §8.
const optimalSizeLimit = 4096

var (
	optimalOnce  sync.Once
	isOptimalTbl [optimalSizeLimit + 1]bool
)

func optimalTable() *[optimalSizeLimit + 1]bool {
	optimalOnce.Do(func() {
		for e2 := 1; e2 <= optimalSizeLimit; e2 *= 2 {
			for e3 := e2; e3 <= optimalSizeLimit; e3 *= 3 {
				for e5 := e3; e5 <= optimalSizeLimit; e5 *= 5 {
					for e7 := e5; e7 <= optimalSizeLimit; e7 *= 7 {
						isOptimalTbl[e7] = true
					}
				}
			}
		}
	})
	return &isOptimalTbl
}

// OptimalSizeUp returns the smallest 7-smooth integer >= size, or size
// itself if none exists within the lookup table (silent fallback,
// matching the original's behavior exactly).
func OptimalSizeUp(size int) int {
	tbl := optimalTable()
	for i := size; i <= optimalSizeLimit; i++ {
		if tbl[i] {
			return i
		}
	}
	return size
}

// OptimalSizeDown returns the largest 7-smooth integer <= size, or
// size itself if none exists within the lookup table.
func OptimalSizeDown(size int) int {
	tbl := optimalTable()
	if size > optimalSizeLimit {
		size = optimalSizeLimit
	}
	for i := size; i > 0; i-- {
		if tbl[i] {
			return i
		}
	}
	return size
}
