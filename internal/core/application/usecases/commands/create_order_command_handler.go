package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/model/sector"
	"smartdelivery/internal/pkg/errs"
)

// CreateOrderResult reports the registered order: its identifier, the human
// reference, the generated OTP when the sector requires one, and the status
// the order landed in (draft, dispatching or assigned).
type CreateOrderResult struct {
	OrderID   uuid.UUID
	Reference string
	OTP       string
	Status    order.Status
}

// CreateOrderCommandHandler registers a new order for a sender. Requirement
// flags default from the sector rule with per-order overrides; an OTP and its
// condition record are created up front when required; a valid pre-assigned
// driver is bound immediately, otherwise the first dispatch batch goes out on
// a best-effort basis.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher *BatchDispatcher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order registrations.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, dispatcher *BatchDispatcher, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle registers the order inside one transaction. A missing sector rule
// falls back to the engine defaults; a pre-assigned driver who is not
// dispatchable is ignored and the order goes through the normal batch cycle.
// Finding zero candidates on the initial dispatch leaves the order in draft
// instead of failing the registration.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sender, err := uow.EnterpriseRepository().Get(ctx, cmd.SenderID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	rule, err := uow.SectorRuleRepository().GetByType(ctx, cmd.SectorType())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResult{}, err
		}
		rule = sector.DefaultRule(cmd.SectorType())
	}
	requirements := applyOverrides(rule.Requirements(), cmd.Overrides())

	id := uuid.New()
	o, err := order.NewOrder(
		id,
		orderReference(id),
		cmd.ExternalRef(),
		cmd.SectorType(),
		sender.ID,
		sender.Name,
		cmd.ReceiverName(),
		cmd.ReceiverPhone(),
		cmd.Pickup(),
		cmd.Drop(),
		requirements,
		cmd.BatchSize(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	var otp string
	if requirements.Any() {
		cond := condition.NewCondition(o.ID())
		if requirements.OTP {
			otp = cond.GenerateOTP()
		}
		if err := uow.ConditionRepository().Add(ctx, cond); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err := h.tryPreAssign(ctx, uow, o, cmd.PreAssignedDriverID()); err != nil {
		return CreateOrderResult{}, err
	}

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	var batch []*driver.Driver
	if o.Status() == order.StatusDraft {
		batch, err = h.dispatcher.DispatchNextBatch(ctx, uow, o)
		if err != nil {
			if !errors.Is(err, ErrNoDriversAvailable) {
				return CreateOrderResult{}, err
			}
			h.logger.InfoContext(ctx, "no drivers available at creation, order stays in draft",
				"order", o.ID())
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	if len(batch) > 0 {
		h.dispatcher.NotifyBatch(ctx, o, batch)
	}

	return CreateOrderResult{
		OrderID:   o.ID(),
		Reference: o.Reference(),
		OTP:       otp,
		Status:    o.Status(),
	}, nil
}

// tryPreAssign binds the requested driver when they are dispatchable. An
// unknown or non-dispatchable driver is skipped silently and the order takes
// the normal dispatch path.
func (h CreateOrderCommandHandler) tryPreAssign(ctx context.Context, uow UoW, o *order.Order, driverID uuid.UUID) error {
	if driverID == uuid.Nil {
		return nil
	}
	d, err := uow.DriverRepository().Get(ctx, driverID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "pre-assigned driver not found, falling back to dispatch",
				"order", o.ID(), "driver", driverID)
			return nil
		}
		return err
	}
	if !d.IsDispatchable() {
		h.logger.InfoContext(ctx, "pre-assigned driver not dispatchable, falling back to dispatch",
			"order", o.ID(), "driver", driverID)
		return nil
	}
	return o.Assign(d.ID())
}

// applyOverrides replaces the sector rule defaults with the per-order flags
// the sender explicitly set.
func applyOverrides(base order.Requirements, overrides RequirementOverrides) order.Requirements {
	if overrides.OTP != nil {
		base.OTP = *overrides.OTP
	}
	if overrides.Signature != nil {
		base.Signature = *overrides.Signature
	}
	if overrides.Photo != nil {
		base.Photo = *overrides.Photo
	}
	if overrides.Biometric != nil {
		base.Biometric = *overrides.Biometric
	}
	return base
}

// orderReference derives the human-facing reference from the order ID.
func orderReference(id uuid.UUID) string {
	return fmt.Sprintf("DEL-%s", strings.ToUpper(id.String()[:8]))
}
