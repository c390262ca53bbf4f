package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"smartdelivery/internal/core/domain/model/billing"
	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/model/sector"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

// DeliverResult reports a completed delivery: the total charged and the
// invoice handle, when invoicing succeeded.
type DeliverResult struct {
	TotalAmount float64
	InvoiceRef  string
}

// DeliverOrderCommandHandler completes a delivery. It validates the submitted
// evidence against the order's requirements, and only when every requirement
// is satisfied does it persist the evidence, mark the order delivered and
// trigger billing. A failed validation leaves the order and its condition
// record untouched so the driver can retry.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	validator  services.ConditionValidator
	accounting ports.AccountingGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery attempts.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	accounting ports.AccountingGateway,
	notifier ports.Notifier,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewConditionValidator(),
		accounting: accounting,
		notifier:   notifier,
		logger:     logger.With("component", "deliver_order"),
	}
}

// Handle processes one delivery attempt inside a single transaction. Billing
// is created exactly once per order; invoice registration failures are logged
// and swallowed so accounting outages never block a completed delivery.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (DeliverResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliverResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliverResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return DeliverResult{}, err
	}

	if !o.IsAssignedTo(cmd.DriverID()) {
		return DeliverResult{}, errs.NewNotAuthorizedError(
			fmt.Sprintf("driver %s is not assigned to order %s", cmd.DriverID(), o.ID()))
	}
	if o.Status() != order.StatusOnWay {
		return DeliverResult{}, errs.NewInvalidStateError("deliver", o.Status().String())
	}

	cond, err := h.getOrCreateCondition(ctx, uow, o)
	if err != nil {
		return DeliverResult{}, err
	}

	if reqs := o.Requirements(); reqs.Any() {
		if violations := h.validator.Validate(reqs, cond, cmd.Evidence()); len(violations) > 0 {
			return DeliverResult{}, errs.NewValidationFailedError(violations, errs.RequirementFlags{
				OTP:       reqs.OTP,
				Signature: reqs.Signature,
				Photo:     reqs.Photo,
				Biometric: reqs.Biometric,
			})
		}
		h.validator.Apply(reqs, cond, cmd.Evidence())
		if err := uow.ConditionRepository().Update(ctx, cond); err != nil {
			return DeliverResult{}, err
		}
	}

	if err := o.MarkDelivered(); err != nil {
		return DeliverResult{}, err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return DeliverResult{}, err
	}

	bill, err := h.ensureBilling(ctx, uow, o)
	if err != nil {
		return DeliverResult{}, err
	}

	senderToken := h.senderToken(ctx, uow, o)

	if err := uow.Commit(ctx); err != nil {
		return DeliverResult{}, err
	}

	h.notifyDelivered(ctx, o, senderToken)

	return DeliverResult{TotalAmount: bill.TotalAmount(), InvoiceRef: bill.InvoiceRef}, nil
}

// getOrCreateCondition returns the order's condition record, creating an
// empty one on the first delivery attempt when none was made at creation.
func (h DeliverOrderCommandHandler) getOrCreateCondition(ctx context.Context, uow UoW, o *order.Order) (*condition.Condition, error) {
	cond, err := uow.ConditionRepository().GetByOrder(ctx, o.ID())
	if err == nil {
		return cond, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	cond = condition.NewCondition(o.ID())
	if err := uow.ConditionRepository().Add(ctx, cond); err != nil {
		return nil, err
	}
	return cond, nil
}

// ensureBilling creates the billing record for a delivered order if none
// exists yet, prices it against the sector rule (falling back to the engine
// defaults when the sector has no stored rule) and attempts to raise the
// invoice. Invoice failures downgrade to a warning; the draft record stays.
func (h DeliverOrderCommandHandler) ensureBilling(ctx context.Context, uow UoW, o *order.Order) (*billing.Billing, error) {
	if existing, err := uow.BillingRepository().GetByOrder(ctx, o.ID()); err == nil {
		return existing, nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	rule, err := uow.SectorRuleRepository().GetByType(ctx, o.SectorType())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		rule = sector.DefaultRule(o.SectorType())
	}

	charge := services.CalculateCharge(rule, o.DistanceKM())
	bill := billing.NewBilling(o.ID(), charge.DistanceKM, charge.BaseTariff, charge.ExtraFee)

	if ref, err := h.createInvoice(ctx, o, bill); err != nil {
		h.logger.WarnContext(ctx, "invoice creation failed, billing stays in draft",
			"order", o.ID(), "error", err)
	} else {
		bill.AttachInvoice(ref)
	}

	if err := uow.BillingRepository().Add(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// createInvoice raises a two-line invoice (base tariff plus distance fee)
// against the receiver, who pays cash on delivery.
func (h DeliverOrderCommandHandler) createInvoice(ctx context.Context, o *order.Order, bill *billing.Billing) (string, error) {
	lines := []ports.InvoiceLine{
		{
			Description: fmt.Sprintf("Delivery %s - base tariff (%s)", o.Reference(), o.SectorType()),
			Quantity:    1,
			UnitPrice:   bill.BaseTariff,
		},
	}
	if bill.ExtraFee > 0 {
		lines = append(lines, ports.InvoiceLine{
			Description: fmt.Sprintf("Delivery %s - distance fee (%.2f km)", o.Reference(), bill.DistanceKM),
			Quantity:    1,
			UnitPrice:   bill.ExtraFee,
		})
	}

	return h.accounting.CreateInvoice(ctx, ports.InvoiceRequest{
		PayerName:  o.ReceiverName(),
		PayerPhone: o.ReceiverPhone(),
		Reference:  o.Reference(),
		Narration:  fmt.Sprintf("Cash on delivery for order %s", o.Reference()),
		Lines:      lines,
	})
}

func (h DeliverOrderCommandHandler) senderToken(ctx context.Context, uow UoW, o *order.Order) string {
	sender, err := uow.EnterpriseRepository().Get(ctx, o.SenderID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "sender lookup for delivery notification failed",
				"order", o.ID(), "error", err)
		}
		return ""
	}
	return sender.FCMToken
}

func (h DeliverOrderCommandHandler) notifyDelivered(ctx context.Context, o *order.Order, token string) {
	if token == "" {
		return
	}
	title := "Order delivered"
	body := fmt.Sprintf("Order %s was delivered to %s", o.Reference(), o.ReceiverName())
	if _, err := h.notifier.Send(ctx, []string{token}, title, body, orderNotificationData(o, "order_delivered")); err != nil {
		h.logger.WarnContext(ctx, "delivery notification failed", "order", o.ID(), "error", err)
	}
}
