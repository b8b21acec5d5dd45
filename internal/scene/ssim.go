package scene

import "bytes"

const (
	ssimWindow    = 7
	ssimDataRange = 255.0
	ssimK1        = 0.01
	ssimK2        = 0.03
)

// SSIM returns the mean structural similarity of two equally sized 8-bit
// grayscale rasters. It uses a uniform 7x7 window with sample covariance and
// averages over window positions that lie fully inside the frame. Frames
// narrower or shorter than 7 px use the largest odd window that fits.
//
// Window sums are maintained incrementally (running column sums slid down the
// rows, then a running row sum slid across), so cost is O(width*height) and
// memory is O(width).
func SSIM(a, b []byte, width, height int) float64 {
	if width <= 0 || height <= 0 || len(a) < width*height || len(b) < width*height {
		return 0
	}
	if bytes.Equal(a[:width*height], b[:width*height]) {
		return 1
	}

	win := ssimWindow
	if width < win {
		win = width
	}
	if height < win {
		win = height
	}
	if win%2 == 0 {
		win--
	}

	np := float64(win * win)
	covNorm := 1.0
	if win > 1 {
		covNorm = np / (np - 1)
	}
	c1 := (ssimK1 * ssimDataRange) * (ssimK1 * ssimDataRange)
	c2 := (ssimK2 * ssimDataRange) * (ssimK2 * ssimDataRange)

	colA := make([]int64, width)
	colB := make([]int64, width)
	colAA := make([]int64, width)
	colBB := make([]int64, width)
	colAB := make([]int64, width)

	addRow := func(row int, sign int64) {
		off := row * width
		for x := 0; x < width; x++ {
			pa := int64(a[off+x])
			pb := int64(b[off+x])
			colA[x] += sign * pa
			colB[x] += sign * pb
			colAA[x] += sign * pa * pa
			colBB[x] += sign * pb * pb
			colAB[x] += sign * pa * pb
		}
	}

	for y := 0; y < win; y++ {
		addRow(y, 1)
	}

	var total float64
	var count int
	for top := 0; top+win <= height; top++ {
		if top > 0 {
			addRow(top-1, -1)
			addRow(top+win-1, 1)
		}

		var sA, sB, sAA, sBB, sAB int64
		for x := 0; x < win; x++ {
			sA += colA[x]
			sB += colB[x]
			sAA += colAA[x]
			sBB += colBB[x]
			sAB += colAB[x]
		}

		for left := 0; left+win <= width; left++ {
			if left > 0 {
				out, in := left-1, left+win-1
				sA += colA[in] - colA[out]
				sB += colB[in] - colB[out]
				sAA += colAA[in] - colAA[out]
				sBB += colBB[in] - colBB[out]
				sAB += colAB[in] - colAB[out]
			}

			ux := float64(sA) / np
			uy := float64(sB) / np
			uxx := float64(sAA) / np
			uyy := float64(sBB) / np
			uxy := float64(sAB) / np

			vx := covNorm * (uxx - ux*ux)
			vy := covNorm * (uyy - uy*uy)
			vxy := covNorm * (uxy - ux*uy)

			num := (2*ux*uy + c1) * (2*vxy + c2)
			den := (ux*ux + uy*uy + c1) * (vx + vy + c2)
			total += num / den
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Dissimilarity returns 1 - SSIM clamped to [0, 1]
func Dissimilarity(a, b []byte, width, height int) float64 {
	d := 1 - SSIM(a, b, width, height)
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// meanAbsDiff returns the mean absolute pixel difference scaled to [0, 1]
func meanAbsDiff(a, b []byte) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var sum int64
	for i := 0; i < n; i++ {
		d := int64(a[i]) - int64(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(n) / ssimDataRange
}
