package scene

import (
	"math"
	"testing"
)

func TestSSIMIdentical(t *testing.T) {
	px := make([]byte, 20*15)
	for i := range px {
		px[i] = byte(i * 7)
	}
	other := append([]byte(nil), px...)

	if got := SSIM(px, other, 20, 15); got != 1 {
		t.Errorf("SSIM(identical) = %v, want 1", got)
	}
	if got := Dissimilarity(px, other, 20, 15); got != 0 {
		t.Errorf("Dissimilarity(identical) = %v, want 0", got)
	}
}

func TestSSIMBlackWhite(t *testing.T) {
	black, white := solid(16, 16, 0), solid(16, 16, 255)

	got := Dissimilarity(black, white, 16, 16)
	if got < 0.99 || got > 1 {
		t.Errorf("Dissimilarity(black, white) = %v, want close to 1", got)
	}
}

func TestSSIMFlatFrames(t *testing.T) {
	// with zero variance only the luminance term remains
	a, b := solid(10, 10, 100), solid(10, 10, 110)
	c1 := math.Pow(0.01*255, 2)
	want := (2*100*110 + c1) / (100*100 + 110*110 + c1)

	if got := SSIM(a, b, 10, 10); math.Abs(got-want) > 1e-12 {
		t.Errorf("SSIM(flat) = %v, want %v", got, want)
	}
}

func TestSSIMSymmetric(t *testing.T) {
	a := make([]byte, 12*9)
	b := make([]byte, 12*9)
	for i := range a {
		a[i] = byte((i * 31) % 256)
		b[i] = byte((i * 17) % 256)
	}

	ab, ba := SSIM(a, b, 12, 9), SSIM(b, a, 12, 9)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("SSIM not symmetric: %v vs %v", ab, ba)
	}
}

func TestSSIMSmallFrames(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"single pixel", 1, 1},
		{"narrow strip", 3, 20},
		{"even sided", 6, 6},
		{"short strip", 40, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := solid(tt.width, tt.height, 10)
			b := solid(tt.width, tt.height, 240)
			got := Dissimilarity(a, b, tt.width, tt.height)
			if math.IsNaN(got) || got < 0 || got > 1 {
				t.Errorf("Dissimilarity = %v, want value in [0,1]", got)
			}
			if got == 0 {
				t.Errorf("Dissimilarity of different frames should be > 0")
			}
		})
	}
}

func TestSSIMBadInput(t *testing.T) {
	if got := SSIM([]byte{1, 2}, []byte{1, 2, 3, 4}, 2, 2); got != 0 {
		t.Errorf("SSIM(short buffer) = %v, want 0", got)
	}
	if got := SSIM(nil, nil, 0, 0); got != 0 {
		t.Errorf("SSIM(empty) = %v, want 0", got)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	if got := meanAbsDiff(solid(4, 4, 0), solid(4, 4, 255)); got != 1 {
		t.Errorf("meanAbsDiff(black, white) = %v, want 1", got)
	}
	if got := meanAbsDiff(solid(4, 4, 9), solid(4, 4, 9)); got != 0 {
		t.Errorf("meanAbsDiff(same) = %v, want 0", got)
	}
}

// windowSSIM is a direct per-window evaluation: uniform win x win windows,
// sample (n-1) variance and covariance, mean over windows fully inside.
func windowSSIM(a, b []byte, width, height, win int) float64 {
	c1 := (0.01 * 255) * (0.01 * 255)
	c2 := (0.03 * 255) * (0.03 * 255)
	n := float64(win * win)

	var total float64
	var count int
	for y0 := 0; y0+win <= height; y0++ {
		for x0 := 0; x0+win <= width; x0++ {
			var mx, my float64
			for y := y0; y < y0+win; y++ {
				for x := x0; x < x0+win; x++ {
					mx += float64(a[y*width+x])
					my += float64(b[y*width+x])
				}
			}
			mx /= n
			my /= n

			var vx, vy, cov float64
			for y := y0; y < y0+win; y++ {
				for x := x0; x < x0+win; x++ {
					dx := float64(a[y*width+x]) - mx
					dy := float64(b[y*width+x]) - my
					vx += dx * dx
					vy += dy * dy
					cov += dx * dy
				}
			}
			vx /= n - 1
			vy /= n - 1
			cov /= n - 1

			total += ((2*mx*my + c1) * (2*cov + c2)) / ((mx*mx + my*my + c1) * (vx + vy + c2))
			count++
		}
	}
	return total / float64(count)
}

// textured returns a reproducible noisy raster
func textured(seed uint32, width, height int) []byte {
	px := make([]byte, width*height)
	x := seed
	for i := range px {
		x = x*1664525 + 1013904223
		px[i] = byte(x >> 24)
	}
	return px
}

func TestSSIMTexturedMatchesWindowDefinition(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		win           int
	}{
		{"exact window", 7, 7, 7},
		{"wide", 23, 11, 7},
		{"tall", 9, 31, 7},
		{"large", 46, 40, 7},
		{"short frame shrinks window", 20, 5, 5},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := textured(uint32(2*i+1), tt.width, tt.height)
			b := textured(uint32(2*i+2), tt.width, tt.height)
			// correlate b with a so the covariance term matters
			for j := range b {
				b[j] = byte((int(a[j])*3 + int(b[j])) / 4)
			}

			want := windowSSIM(a, b, tt.width, tt.height, tt.win)
			got := SSIM(a, b, tt.width, tt.height)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("SSIM = %.12f, want %.12f", got, want)
			}
			if want <= 0.05 || want >= 0.99 {
				t.Errorf("reference %.4f is not in the textured range", want)
			}
		})
	}
}
