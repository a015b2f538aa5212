package services

import (
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories and
// collaborators. This is the single place the dependency graph is assembled.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	settingsSvc := NewVatSettingsService(repos.VatSettingsRepo)
	accountingSvc := NewAccountingService(repos.JournalRepo)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, settingsSvc)
	paymentSvc := NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, accountingSvc)
	vatSvc := NewVatService(repos.VatFilingRepo, repos.InvoiceRepo, settingsSvc)

	return &portssvc.ServiceContainer{
		Invoice:     invoiceSvc,
		Payment:     paymentSvc,
		Vat:         vatSvc,
		VatSettings: settingsSvc,
		Accounting:  accountingSvc,
	}
}
