package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
)

// vatSettingsService provides per-company VAT settings with defaulting.
type vatSettingsService struct {
	settingsRepo portsrepo.VatSettingsRepositoryFacade
}

// NewVatSettingsService creates a new VatSettingsService.
func NewVatSettingsService(settingsRepo portsrepo.VatSettingsRepositoryFacade) portssvc.VatSettingsSvcFacade {
	return &vatSettingsService{settingsRepo: settingsRepo}
}

var _ portssvc.VatSettingsSvcFacade = (*vatSettingsService)(nil)

// GetVatSettings returns a company's settings, falling back to the disabled
// quarterly defaults when none were ever saved.
func (s *vatSettingsService) GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error) {
	settings, err := s.settingsRepo.GetVatSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultVatSettings(companyID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load VAT settings: %w", err)
	}
	return settings, nil
}

// UpdateVatSettings creates or replaces a company's VAT settings.
func (s *vatSettingsService) UpdateVatSettings(ctx context.Context, companyID string, req dto.UpdateVatSettingsRequest, requestingUserID string) (*domain.VatSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	frequency := domain.FilingFrequency(req.FilingFrequency)
	if frequency != domain.FilingMonthly && frequency != domain.FilingQuarterly {
		return nil, fmt.Errorf("%w: unknown filing frequency %q", apperrors.ErrValidation, req.FilingFrequency)
	}
	if req.VatEnabled && req.TRN == "" {
		return nil, fmt.Errorf("%w: TRN is required when VAT is enabled", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	settings := domain.VatSettings{
		CompanyID:       companyID,
		TRN:             req.TRN,
		VatEnabled:      req.VatEnabled,
		FilingFrequency: frequency,
		FilingDay:       req.FilingDay,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	saved, err := s.settingsRepo.UpsertVatSettings(ctx, settings)
	if err != nil {
		logger.Error("Failed to save VAT settings", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save VAT settings: %w", err)
	}

	logger.Info("VAT settings updated", slog.String("company_id", companyID), slog.Bool("vat_enabled", saved.VatEnabled))
	return saved, nil
}
