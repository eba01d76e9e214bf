package utils

import (
	"errors"
	"image"
	"math"
)

// ChannelStats summarizes one image as per-channel mean and standard
// deviation on the 0-255 scale, the inputs of the validity heuristic.
type ChannelStats struct {
	RMean, GMean, BMean float64
	RStd, GStd, BStd    float64
}

// ComputeChannelStats walks every pixel once, accumulating sums and squared
// sums per channel. Population standard deviation, matching the statistics
// the thresholds were tuned against.
func ComputeChannelStats(img image.Image) (ChannelStats, error) {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return ChannelStats{}, errors.New("empty image")
	}

	var sumR, sumG, sumB float64
	var sqR, sqG, sqB float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r := float64(pr >> 8)
			g := float64(pg >> 8)
			b := float64(pb >> 8)
			sumR += r
			sumG += g
			sumB += b
			sqR += r * r
			sqG += g * g
			sqB += b * b
		}
	}

	s := ChannelStats{
		RMean: sumR / n,
		GMean: sumG / n,
		BMean: sumB / n,
	}
	s.RStd = math.Sqrt(math.Max(0, sqR/n-s.RMean*s.RMean))
	s.GStd = math.Sqrt(math.Max(0, sqG/n-s.GMean*s.GMean))
	s.BStd = math.Sqrt(math.Max(0, sqB/n-s.BMean*s.BMean))
	return s, nil
}

// RGBToHSV converts r, g, b in [0,1] to h, s, v in [0,1].
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc
	if maxc == minc {
		return 0, 0, v
	}
	s = (maxc - minc) / maxc
	rc := (maxc - r) / (maxc - minc)
	gc := (maxc - g) / (maxc - minc)
	bc := (maxc - b) / (maxc - minc)
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = h / 6
	h -= math.Floor(h)
	return h, s, v
}
