package commands

import (
	"context"
	"fmt"
	"log/slog"

	"smartdelivery/internal/core/domain/model/billing"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

// RegisterCashPaymentCommandHandler settles a cash-on-delivery order: the
// invoice is posted if still in draft, the payment is registered, and the
// payment state the gateway reports is recomputed onto the billing record.
type RegisterCashPaymentCommandHandler struct {
	uowFactory UoWFactory
	accounting ports.AccountingGateway
	logger     *slog.Logger
}

// NewRegisterCashPaymentCommandHandler creates a handler for cash payments.
func NewRegisterCashPaymentCommandHandler(uowFactory UoWFactory, accounting ports.AccountingGateway, logger *slog.Logger) RegisterCashPaymentCommandHandler {
	return RegisterCashPaymentCommandHandler{
		uowFactory: uowFactory,
		accounting: accounting,
		logger:     logger.With("component", "register_cash_payment"),
	}
}

// Handle posts and pays the order's invoice. Unlike the delivery path,
// gateway failures here surface to the caller: the cashier needs to know the
// payment did not register.
func (h RegisterCashPaymentCommandHandler) Handle(ctx context.Context, cmd RegisterCashPaymentCommand) (ports.PaymentState, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bill, err := uow.BillingRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}
	if bill.InvoiceRef == "" {
		return "", errs.NewInvalidStateError("register cash payment", string(bill.State))
	}

	if bill.State == billing.StateInvoiced {
		if err := h.accounting.PostInvoice(ctx, bill.InvoiceRef); err != nil {
			return "", fmt.Errorf("posting invoice %s: %w", bill.InvoiceRef, err)
		}
		bill.SetState(billing.StatePosted)
	}

	paymentState, err := h.accounting.RegisterCashPayment(ctx, bill.InvoiceRef)
	if err != nil {
		// Keep the posted state if we got that far.
		if updateErr := uow.BillingRepository().Update(ctx, bill); updateErr == nil {
			_ = uow.Commit(ctx)
		}
		return "", fmt.Errorf("registering cash payment for invoice %s: %w", bill.InvoiceRef, err)
	}

	bill.SetState(paymentStateToBilling(paymentState))

	if err := uow.BillingRepository().Update(ctx, bill); err != nil {
		return "", err
	}
	if err := uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.InfoContext(ctx, "cash payment registered",
		"order", cmd.OrderID(), "invoice", bill.InvoiceRef, "state", paymentState)
	return paymentState, nil
}

// paymentStateToBilling maps the gateway's reconciliation state onto the
// billing record's lifecycle.
func paymentStateToBilling(state ports.PaymentState) billing.State {
	switch state {
	case ports.PaymentStatePaid:
		return billing.StatePaid
	case ports.PaymentStatePartial:
		return billing.StatePartial
	default:
		return billing.StatePosted
	}
}
