package services

import (
	"fmt"
	"image"
	"strings"

	"github.com/zelphyx/Glucoin-AI/utils"
)

const (
	ImageTypeTongue = "tongue"
	ImageTypeNail   = "nail"
)

// ImageVerdict is the outcome of the validity heuristic. Reasons is empty
// iff the image was accepted.
type ImageVerdict struct {
	Valid      bool
	Confidence float64
	Reasons    []string
	Message    string
}

// colorFeatures bundles the summary statistics every check reads: channel
// means/stddevs on 0-255 plus the HSV of the mean color, normalized to [0,1].
type colorFeatures struct {
	stats   utils.ChannelStats
	h, s, v float64
}

// Each check contributes a fixed 0.25 to the confidence when it passes and
// a localized reason when it fails. Confidence is therefore always one of
// {0, 0.25, 0.5, 0.75, 1.0} and the image is accepted at >= 0.5.
type validityCheck struct {
	passes func(f colorFeatures) bool
	reason string
}

const checkWeight = 0.25

// Tongue: dominant red/pink, medium saturation, visible texture.
var tongueChecks = []validityCheck{
	{func(f colorFeatures) bool {
		return f.stats.RMean > f.stats.GMean && f.stats.RMean > f.stats.BMean*0.8
	}, "warna tidak sesuai karakteristik lidah"},
	{func(f colorFeatures) bool {
		return f.h <= 0.12 || f.h >= 0.85
	}, "tone warna bukan merah/pink"},
	{func(f colorFeatures) bool {
		return f.s >= 0.15 && f.s <= 0.85
	}, "saturasi tidak normal"},
	{func(f colorFeatures) bool {
		return f.stats.RStd > 15 && f.stats.GStd > 10
	}, "tekstur tidak terdeteksi"},
}

// Nail: pale pink/white/yellowish, brighter than a tongue.
var nailChecks = []validityCheck{
	{func(f colorFeatures) bool {
		return f.v >= 0.3
	}, "gambar terlalu gelap untuk kuku"},
	{func(f colorFeatures) bool {
		return f.stats.RMean >= f.stats.GMean*0.85
	}, "warna tidak sesuai skin tone"},
	{func(f colorFeatures) bool {
		return f.s <= 0.7
	}, "warna terlalu jenuh untuk kuku"},
	{func(f colorFeatures) bool {
		return f.stats.RStd > 10 || f.stats.GStd > 10
	}, "tekstur tidak terdeteksi"},
}

// ValidateImage decides whether img plausibly shows the claimed subject.
// Any fault during statistics extraction downgrades to a rejection instead
// of propagating to the caller.
func ValidateImage(img image.Image, imageType string) (verdict ImageVerdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = ImageVerdict{
				Valid:      false,
				Confidence: 0,
				Reasons:    []string{fmt.Sprintf("Error validasi gambar: %v", r)},
				Message:    fmt.Sprintf("Error validasi gambar: %v", r),
			}
		}
	}()

	stats, err := utils.ComputeChannelStats(img)
	if err != nil {
		return ImageVerdict{
			Valid:      false,
			Confidence: 0,
			Reasons:    []string{fmt.Sprintf("Error validasi gambar: %v", err)},
			Message:    fmt.Sprintf("Error validasi gambar: %v", err),
		}
	}

	h, s, v := utils.RGBToHSV(stats.RMean/255, stats.GMean/255, stats.BMean/255)
	f := colorFeatures{stats: stats, h: h, s: s, v: v}

	checks := tongueChecks
	if imageType == ImageTypeNail {
		checks = nailChecks
	}

	confidence := 0.0
	var reasons []string
	for _, c := range checks {
		if c.passes(f) {
			confidence += checkWeight
		} else {
			reasons = append(reasons, c.reason)
		}
	}

	valid := confidence >= 0.5
	var message string
	if valid {
		message = fmt.Sprintf("Gambar %s terdeteksi valid (confidence: %.0f%%)", imageType, confidence*100)
		reasons = nil
	} else {
		message = fmt.Sprintf("Gambar tidak terdeteksi sebagai %s. %s", imageType, strings.Join(reasons, ", "))
	}

	return ImageVerdict{
		Valid:      valid,
		Confidence: confidence,
		Reasons:    reasons,
		Message:    message,
	}
}
