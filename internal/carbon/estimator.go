// Package carbon derives an estimated per-page-load carbon figure from page
// transfer weight, using the Sustainable Web Design energy model constants.
package carbon

import (
	"math"

	"analyzer/internal/domain"
)

const (
	bytesPerGB    = 1073741824.0
	kwhPerGB      = 0.81  // data transfer energy intensity
	gridGramsKwh  = 442.0 // global average grid carbon intensity
	greenDiscount = 0.92  // renewable-powered hosting share
)

// EstimateGrams returns the estimated grams of CO2 emitted per page load.
func EstimateGrams(pageWeightBytes int64, hosting domain.GreenHosting) float64 {
	if pageWeightBytes <= 0 {
		return 0
	}
	grams := float64(pageWeightBytes) / bytesPerGB * kwhPerGB * gridGramsKwh
	if hosting == domain.HostingGreen {
		grams *= greenDiscount
	}
	return math.Round(grams*100) / 100
}
