package models

// Totals is the computed roll-up for one template. It is a closed set:
// exactly one variant exists per template kind, so consumers can type-switch
// without worrying about unknown shapes.
type Totals interface {
	isTotals()
}

// CA1Totals holds the capital-tier roll-ups for the Own Funds template.
type CA1Totals struct {
	CET1          float64 `json:"cet1"`
	AT1           float64 `json:"at1"`
	Tier1         float64 `json:"tier1"`
	Tier2         float64 `json:"tier2"`
	TotalOwnFunds float64 `json:"total_own_funds"`
}

func (CA1Totals) isTotals() {}

// CA2Totals holds the risk-category roll-ups for the Own Funds
// Requirements template.
type CA2Totals struct {
	CreditRiskRWA float64 `json:"credit_risk_rwa"`
	MarketRiskRWA float64 `json:"market_risk_rwa"`
	CVARiskRWA    float64 `json:"cva_risk_rwa"`
	OpRiskRWA     float64 `json:"op_risk_rwa"`
	TotalRWA      float64 `json:"total_rwa"`
}

func (CA2Totals) isTotals() {}

// RatioField names one of the computed capital ratios. Threshold rules
// reference ratios through this type so a rule cannot point at a key the
// calculator never produces.
type RatioField string

const (
	RatioCET1         RatioField = "cet1_ratio"
	RatioTier1        RatioField = "tier1_ratio"
	RatioTotalCapital RatioField = "total_capital_ratio"
)

// Ratios holds capital ratios as two-decimal percentages. A nil *Ratios
// means no positive risk-exposure denominator was available.
type Ratios struct {
	CET1Ratio         float64 `json:"cet1_ratio"`
	Tier1Ratio        float64 `json:"tier1_ratio"`
	TotalCapitalRatio float64 `json:"total_capital_ratio"`
	CET1Buffer        float64 `json:"cet1_buffer"`
	MeetsCCB          bool    `json:"meets_ccb"`
}

// Field returns the named ratio. A nil receiver or unknown field yields 0,
// matching the validation engine's missing-value semantics.
func (r *Ratios) Field(f RatioField) float64 {
	if r == nil {
		return 0
	}
	switch f {
	case RatioCET1:
		return r.CET1Ratio
	case RatioTier1:
		return r.Tier1Ratio
	case RatioTotalCapital:
		return r.TotalCapitalRatio
	}
	return 0
}
