package engine

import "github.com/finreg/corep/internal/models"

// CalculateTotals folds a value map into the roll-up totals for one
// template kind. It is a total function: absent inputs read as zero and
// supplied computed-total rows are ignored, the totals are always
// recomputed. Deduction rows arrive as positive magnitudes and are
// subtracted exactly once here.
func CalculateTotals(kind models.TemplateKind, values ValueMap) models.Totals {
	switch kind {
	case models.TemplateCA2:
		return calculateCA2Totals(values)
	default:
		return calculateCA1Totals(values)
	}
}

func calculateCA1Totals(values ValueMap) models.CA1Totals {
	cet1Items := values.sum("010", "020", "030", "040", "050", "060", "070")
	cet1Deductions := values.sum("080", "090", "100", "110", "120")
	cet1Other := values.Get("130") // signed, may be negative
	cet1 := cet1Items - cet1Deductions + cet1Other

	at1 := values.sum("300", "310") - values.Get("320") + values.Get("330")
	tier1 := cet1 + at1

	tier2 := values.sum("600", "610", "620") - values.Get("630") + values.Get("640")

	return models.CA1Totals{
		CET1:          cet1,
		AT1:           at1,
		Tier1:         tier1,
		Tier2:         tier2,
		TotalOwnFunds: tier1 + tier2,
	}
}

func calculateCA2Totals(values ValueMap) models.CA2Totals {
	credit := values.sum("010", "020", "030", "040")
	market := values.sum("100", "110", "120")
	cva := values.Get("200")
	op := values.Get("300")

	return models.CA2Totals{
		CreditRiskRWA: credit,
		MarketRiskRWA: market,
		CVARiskRWA:    cva,
		OpRiskRWA:     op,
		TotalRWA:      credit + market + cva + op,
	}
}
