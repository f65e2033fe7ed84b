package rscope

import (
	"fmt"
	"image"
)

const ssimBlock = 8

var (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// ssimStats accumulates the moments SSIM needs over one window.
type ssimStats struct {
	n                   float64
	sumA, sumB          float64
	sumAA, sumBB, sumAB float64
}

func (s *ssimStats) add(a, b uint8) {
	va, vb := float64(a), float64(b)
	s.n++
	s.sumA += va
	s.sumB += vb
	s.sumAA += va * va
	s.sumBB += vb * vb
	s.sumAB += va * vb
}

func (s *ssimStats) ssim() float64 {
	meanA := s.sumA / s.n
	meanB := s.sumB / s.n
	varA := s.sumAA/s.n - meanA*meanA
	varB := s.sumBB/s.n - meanB*meanB
	cov := s.sumAB/s.n - meanA*meanB
	num := (2*meanA*meanB + ssimC1) * (2*cov + ssimC2)
	den := (meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2)
	return num / den
}

// SSIM returns the structural similarity of two equal-sized grayscale
// images: the mean over non-overlapping 8x8 blocks, or a single global
// window when either dimension is below 8.
func SSIM(a, b *image.Gray) (float64, error) {
	aw, ah := size(a)
	bw, bh := size(b)
	if aw != bw || ah != bh {
		return 0, fmt.Errorf("ssim: size mismatch %dx%d vs %dx%d", aw, ah, bw, bh)
	}
	if aw == 0 || ah == 0 {
		return 1, nil
	}

	if aw < ssimBlock || ah < ssimBlock {
		var s ssimStats
		for y := 0; y < ah; y++ {
			ra, rb := row(a, y), row(b, y)
			for x := range ra {
				s.add(ra[x], rb[x])
			}
		}
		return s.ssim(), nil
	}

	var total float64
	var count int
	for by := 0; by+ssimBlock <= ah; by += ssimBlock {
		for bx := 0; bx+ssimBlock <= aw; bx += ssimBlock {
			var s ssimStats
			for y := by; y < by+ssimBlock; y++ {
				ra, rb := row(a, y), row(b, y)
				for x := bx; x < bx+ssimBlock; x++ {
					s.add(ra[x], rb[x])
				}
			}
			total += s.ssim()
			count++
		}
	}
	return total / float64(count), nil
}
