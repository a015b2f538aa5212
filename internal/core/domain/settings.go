package domain

// FilingFrequency is the cadence at which a company files VAT returns.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "MONTHLY"
	FilingQuarterly FilingFrequency = "QUARTERLY"
)

// VatSettings is a company's VAT registration snapshot, read by the VAT
// calculator and the filing aggregator.
type VatSettings struct {
	CompanyID       string          `json:"companyID"`
	TRN             string          `json:"trn"` // Tax Registration Number
	VatEnabled      bool            `json:"vatEnabled"`
	FilingFrequency FilingFrequency `json:"filingFrequency"`
	FilingDay       int             `json:"filingDay"` // Day of month the return is due
	AuditFields
}

// DefaultVatSettings is the snapshot used for companies that never configured
// VAT: disabled, quarterly cadence.
func DefaultVatSettings(companyID string) VatSettings {
	return VatSettings{
		CompanyID:       companyID,
		VatEnabled:      false,
		FilingFrequency: FilingQuarterly,
		FilingDay:       28,
	}
}
