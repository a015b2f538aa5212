package services

import (
	"context"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/dto"
)

// VatSettingsSvcFacade defines operations for per-company VAT settings.
// Reads fall back to defaults when a company has never saved settings.
type VatSettingsSvcFacade interface {
	GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error)
	UpdateVatSettings(ctx context.Context, companyID string, req dto.UpdateVatSettingsRequest, requestingUserID string) (*domain.VatSettings, error)
}
