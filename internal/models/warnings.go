package models

// WarningCode categorizes warnings by subsystem.
// W2xxx = input normalization, W3xxx = ratio derivation.
type WarningCode string

const (
	WarnUnknownRow       WarningCode = "W2001" // supplied key matches no schema row or named input
	WarnComputedRowGiven WarningCode = "W2002" // value supplied for a computed-total row (ignored, always recomputed)
	WarnNoDenominator    WarningCode = "W3001" // no positive risk exposure amount, ratios omitted
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
