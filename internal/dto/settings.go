package dto

import (
	"github.com/qaydhq/qayd_backend/internal/core/domain"
)

// UpdateVatSettingsRequest defines the data for a company's VAT settings.
type UpdateVatSettingsRequest struct {
	TRN             string `json:"trn" binding:"omitempty,trn"`
	VatEnabled      bool   `json:"vatEnabled"`
	FilingFrequency string `json:"filingFrequency" binding:"required,oneof=MONTHLY QUARTERLY"`
	FilingDay       int    `json:"filingDay" binding:"required,min=1,max=28"`
}

// VatSettingsResponse defines the data returned for a company's VAT settings.
type VatSettingsResponse struct {
	CompanyID       string `json:"companyID"`
	TRN             string `json:"trn,omitempty"`
	VatEnabled      bool   `json:"vatEnabled"`
	FilingFrequency string `json:"filingFrequency"`
	FilingDay       int    `json:"filingDay"`
}

// ToVatSettingsResponse converts domain.VatSettings to its DTO.
func ToVatSettingsResponse(s *domain.VatSettings) VatSettingsResponse {
	return VatSettingsResponse{
		CompanyID:       s.CompanyID,
		TRN:             s.TRN,
		VatEnabled:      s.VatEnabled,
		FilingFrequency: string(s.FilingFrequency),
		FilingDay:       s.FilingDay,
	}
}
