package repositories

import (
	"context"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
)

// VatSettingsRepositoryFacade defines persistence for per-company VAT settings.
type VatSettingsRepositoryFacade interface {
	// GetVatSettings retrieves a company's VAT settings, or
	// apperrors.ErrNotFound when none have been saved yet.
	GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error)

	// UpsertVatSettings creates or replaces a company's VAT settings.
	UpsertVatSettings(ctx context.Context, settings domain.VatSettings) (*domain.VatSettings, error)
}
