package repositories

// RepositoryProvider bundles every repository facade the service layer needs.
type RepositoryProvider struct {
	InvoiceRepo     InvoiceRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	VatFilingRepo   VatFilingRepositoryFacade
	VatSettingsRepo VatSettingsRepositoryFacade
	JournalRepo     JournalRepositoryFacade
}
