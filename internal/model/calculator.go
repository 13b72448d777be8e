package model

import "math"

// FabricEstimate holds the result of a fabric purchasing calculation.
type FabricEstimate struct {
	TotalPieceArea  int     `json:"total_piece_area"`  // Area of all pieces including spacing allowance (sq mm)
	FabricWidth     int     `json:"fabric_width"`      // Roll width used for the estimate (mm)
	LengthExact     float64 `json:"length_exact"`      // Length if pieces tiled the roll perfectly (mm)
	LengthMin       int     `json:"length_min"`        // Ceiling of LengthExact (mm)
	LengthWithWaste int     `json:"length_with_waste"` // Recommended length including waste factor (mm)
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g., 15 for 15%)
	PricePerMetre   float64 `json:"price_per_metre"`   // Price used for estimation
	EstimatedCost   float64 `json:"estimated_cost"`    // Cost of LengthWithWaste
}

// CalculateFabricEstimate computes a lower bound of how much fabric to buy
// for a set of pieces. The layout engine usually needs more because of
// excluded zones and the greedy placement.
func CalculateFabricEstimate(pieces []Rectangle, fabricWidth, spacing int, wastePercent, pricePerMetre float64) FabricEstimate {
	total := 0
	for _, p := range pieces {
		total += (p.Width + spacing) * (p.Length + spacing)
	}

	if fabricWidth <= 0 {
		return FabricEstimate{
			TotalPieceArea: total,
			WastePercent:   wastePercent,
		}
	}

	exact := float64(total) / float64(fabricWidth)
	minLength := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minLength {
		withWaste = minLength
	}

	return FabricEstimate{
		TotalPieceArea:  total,
		FabricWidth:     fabricWidth,
		LengthExact:     exact,
		LengthMin:       minLength,
		LengthWithWaste: withWaste,
		WastePercent:    wastePercent,
		PricePerMetre:   pricePerMetre,
		EstimatedCost:   float64(withWaste) / 1000.0 * pricePerMetre,
	}
}
