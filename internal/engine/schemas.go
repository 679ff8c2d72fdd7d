package engine

import "github.com/finreg/corep/internal/models"

// Row layouts follow COREP C 01.00 / C 02.00. Deduction rows carry sign "-"
// and are supplied as positive magnitudes; the totals calculator performs
// the subtraction.

func ca1Schema() *models.TemplateSchema {
	return &models.TemplateSchema{
		TemplateID:   "C_01.00",
		TemplateName: "Own Funds",
		Kind:         models.TemplateCA1,
		Rows: []models.RowDefinition{
			// CET1 capital items
			{RowID: "010", Label: "Capital instruments eligible as CET1 capital", Category: "CET1", Sign: models.SignAdd},
			{RowID: "020", Label: "Share premium", Category: "CET1", Sign: models.SignAdd},
			{RowID: "030", Label: "Retained earnings", Category: "CET1", Sign: models.SignAdd},
			{RowID: "040", Label: "Accumulated other comprehensive income", Category: "CET1", Sign: models.SignAdd},
			{RowID: "050", Label: "Other reserves", Category: "CET1", Sign: models.SignAdd},
			{RowID: "060", Label: "Funds for general banking risk", Category: "CET1", Sign: models.SignAdd},
			{RowID: "070", Label: "Adjustments to CET1 due to prudential filters", Category: "CET1", Sign: models.SignEither},
			{RowID: "080", Label: "(-) Goodwill", Category: "CET1_DED", Sign: models.SignDeduct},
			{RowID: "090", Label: "(-) Other intangible assets", Category: "CET1_DED", Sign: models.SignDeduct},
			{RowID: "100", Label: "(-) Deferred tax assets dependent on future profitability", Category: "CET1_DED", Sign: models.SignDeduct},
			{RowID: "110", Label: "(-) Defined benefit pension fund assets", Category: "CET1_DED", Sign: models.SignDeduct},
			{RowID: "120", Label: "(-) Direct, indirect and synthetic holdings of own CET1", Category: "CET1_DED", Sign: models.SignDeduct},
			{RowID: "130", Label: "CET1 capital elements or deductions - other", Category: "CET1", Sign: models.SignEither},
			{RowID: "200", Label: "Common Equity Tier 1 (CET1) capital", Category: "CET1_TOTAL", Sign: models.SignComputed, IsTotal: true},

			// AT1 capital items
			{RowID: "300", Label: "Capital instruments eligible as AT1 capital", Category: "AT1", Sign: models.SignAdd},
			{RowID: "310", Label: "Share premium related to AT1 instruments", Category: "AT1", Sign: models.SignAdd},
			{RowID: "320", Label: "(-) Holdings of own AT1 instruments", Category: "AT1_DED", Sign: models.SignDeduct},
			{RowID: "330", Label: "AT1 capital elements or deductions - other", Category: "AT1", Sign: models.SignEither},
			{RowID: "400", Label: "Additional Tier 1 (AT1) capital", Category: "AT1_TOTAL", Sign: models.SignComputed, IsTotal: true},

			{RowID: "500", Label: "Tier 1 capital (T1 = CET1 + AT1)", Category: "T1_TOTAL", Sign: models.SignComputed, IsTotal: true},

			// Tier 2 capital items
			{RowID: "600", Label: "Capital instruments eligible as T2 capital", Category: "T2", Sign: models.SignAdd},
			{RowID: "610", Label: "Share premium related to T2 instruments", Category: "T2", Sign: models.SignAdd},
			{RowID: "620", Label: "Credit risk adjustments", Category: "T2", Sign: models.SignAdd},
			{RowID: "630", Label: "(-) Holdings of own T2 instruments", Category: "T2_DED", Sign: models.SignDeduct},
			{RowID: "640", Label: "T2 capital elements or deductions - other", Category: "T2", Sign: models.SignEither},
			{RowID: "700", Label: "Tier 2 (T2) capital", Category: "T2_TOTAL", Sign: models.SignComputed, IsTotal: true},

			{RowID: "800", Label: "Total Own Funds (T1 + T2)", Category: "TOTAL", Sign: models.SignComputed, IsTotal: true},
		},
	}
}

func ca2Schema() *models.TemplateSchema {
	return &models.TemplateSchema{
		TemplateID:   "C_02.00",
		TemplateName: "Own Funds Requirements",
		Kind:         models.TemplateCA2,
		Rows: []models.RowDefinition{
			// Credit risk
			{RowID: "010", Label: "Credit risk - Standardised Approach (SA)", Category: "CREDIT_RISK", Sign: models.SignAdd},
			{RowID: "020", Label: "Credit risk - IRB Approach", Category: "CREDIT_RISK", Sign: models.SignAdd},
			{RowID: "030", Label: "Securitisation positions", Category: "CREDIT_RISK", Sign: models.SignAdd},
			{RowID: "040", Label: "Contribution to CCP default fund", Category: "CREDIT_RISK", Sign: models.SignAdd},
			{RowID: "050", Label: "Total credit risk RWA", Category: "CREDIT_RISK_TOTAL", Sign: models.SignComputed, IsTotal: true},

			// Market risk
			{RowID: "100", Label: "Position risk (trading book)", Category: "MARKET_RISK", Sign: models.SignAdd},
			{RowID: "110", Label: "Foreign exchange risk", Category: "MARKET_RISK", Sign: models.SignAdd},
			{RowID: "120", Label: "Commodities risk", Category: "MARKET_RISK", Sign: models.SignAdd},
			{RowID: "150", Label: "Total market risk RWA", Category: "MARKET_RISK_TOTAL", Sign: models.SignComputed, IsTotal: true},

			{RowID: "200", Label: "Credit valuation adjustment risk", Category: "CVA_RISK", Sign: models.SignAdd},
			{RowID: "300", Label: "Operational risk", Category: "OP_RISK", Sign: models.SignAdd},

			{RowID: "500", Label: "Total Risk Exposure Amount (TREA)", Category: "TOTAL_RWA", Sign: models.SignComputed, IsTotal: true},

			// Memorandum items
			{RowID: "600", Label: "CET1 capital ratio (%)", Category: "RATIO", Sign: models.SignPercent},
			{RowID: "610", Label: "Tier 1 capital ratio (%)", Category: "RATIO", Sign: models.SignPercent},
			{RowID: "620", Label: "Total capital ratio (%)", Category: "RATIO", Sign: models.SignPercent},
			{RowID: "630", Label: "Institution-specific buffer requirement (%)", Category: "BUFFER", Sign: models.SignPercent},
			{RowID: "640", Label: "CET1 available to meet buffers (%)", Category: "BUFFER", Sign: models.SignPercent},
		},
	}
}
