package commands

import "context"

// ReviewDriverCommandHandler applies a registration review decision.
type ReviewDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewReviewDriverCommandHandler creates a handler for registration reviews.
func NewReviewDriverCommandHandler(uowFactory UoWFactory) ReviewDriverCommandHandler {
	return ReviewDriverCommandHandler{uowFactory: uowFactory}
}

// Handle approves or rejects the pending registration. Reviewing a driver
// who already left pending status is an invalid-state error.
func (h ReviewDriverCommandHandler) Handle(ctx context.Context, cmd ReviewDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	switch cmd.Decision() {
	case ReviewApprove:
		err = d.Approve()
	case ReviewReject:
		err = d.Reject(cmd.Reason())
	}
	if err != nil {
		return err
	}

	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
