package ports

import "context"

// InvoiceLine is one line item on an invoice request.
type InvoiceLine struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// InvoiceRequest describes the invoice to raise against the receiver, who
// pays cash on delivery.
type InvoiceRequest struct {
	PayerName  string
	PayerPhone string
	Reference  string
	Narration  string
	Lines      []InvoiceLine
}

// PaymentState is the reconciliation state reported by the accounting
// collaborator after a payment is registered.
type PaymentState string

const (
	PaymentStateNotPaid PaymentState = "not_paid"
	PaymentStatePartial PaymentState = "partial"
	PaymentStatePaid    PaymentState = "paid"
)

// AccountingGateway is the narrow contract to the host ERP's accounting
// subsystem. The core only depends on these calls succeeding or failing; it
// never models ledger internals. Failures on the billing path are logged
// and swallowed so a malfunctioning accounting system can never block a
// completed delivery.
type AccountingGateway interface {
	// CreateInvoice raises a draft invoice and returns its handle.
	CreateInvoice(ctx context.Context, req InvoiceRequest) (string, error)

	// PostInvoice confirms a draft invoice.
	PostInvoice(ctx context.Context, invoiceRef string) error

	// RegisterCashPayment records a cash payment against the invoice and
	// returns the resulting reconciliation state.
	RegisterCashPayment(ctx context.Context, invoiceRef string) (PaymentState, error)
}
