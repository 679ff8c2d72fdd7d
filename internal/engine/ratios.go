package engine

import (
	"math"

	"github.com/finreg/corep/internal/models"
)

// Regulatory minima from CRR Article 92 and the capital conservation
// buffer from CRD IV.
const (
	minCET1Ratio    = 4.5
	ccbRequiredCET1 = 7.0 // 4.5% minimum + 2.5% CCB
)

// CalculateRatios derives capital ratios from totals plus an optional
// externally supplied risk exposure amount. The denominator resolves in
// order: CA2 total RWA, values["rwa"], values["total_rwa"], falling
// through only while the candidate is exactly zero or absent. A negative
// candidate resolves and then fails the positivity check, so a negative
// CA2 total never borrows a supplied denominator. When no positive
// denominator is available the ratios are undefined and nil is returned;
// that is a degraded outcome, not an error.
func CalculateRatios(totals models.Totals, values ValueMap) *models.Ratios {
	var rwa float64
	var cet1, tier1, ownFunds float64

	switch t := totals.(type) {
	case models.CA2Totals:
		rwa = t.TotalRWA
	case models.CA1Totals:
		cet1, tier1, ownFunds = t.CET1, t.Tier1, t.TotalOwnFunds
	}
	if rwa == 0 {
		rwa = values.Get("rwa")
	}
	if rwa == 0 {
		rwa = values.Get("total_rwa")
	}
	if rwa <= 0 {
		return nil
	}

	cet1Ratio := round2(cet1 / rwa * 100)
	return &models.Ratios{
		CET1Ratio:         cet1Ratio,
		Tier1Ratio:        round2(tier1 / rwa * 100),
		TotalCapitalRatio: round2(ownFunds / rwa * 100),
		CET1Buffer:        round2(cet1Ratio - minCET1Ratio),
		MeetsCCB:          cet1Ratio >= ccbRequiredCET1,
	}
}

// round2 rounds half away from zero to two decimal places. Regulatory
// reporting expects deterministic two-decimal percentages.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
