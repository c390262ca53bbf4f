package commands

import "context"

// RegisterFCMTokenCommandHandler stores device tokens for drivers and
// senders.
type RegisterFCMTokenCommandHandler struct {
	uowFactory UoWFactory
}

// NewRegisterFCMTokenCommandHandler creates a handler for token
// registrations.
func NewRegisterFCMTokenCommandHandler(uowFactory UoWFactory) RegisterFCMTokenCommandHandler {
	return RegisterFCMTokenCommandHandler{uowFactory: uowFactory}
}

// Handle binds the token to the principal's account. A new token replaces
// the previous one.
func (h RegisterFCMTokenCommandHandler) Handle(ctx context.Context, cmd RegisterFCMTokenCommand) error {
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

	switch cmd.Role() {
	case RoleDriver:
		d, err := uow.DriverRepository().Get(ctx, cmd.PrincipalID())
		if err != nil {
			return err
		}
		d.SetFCMToken(cmd.Token())
		if err := uow.DriverRepository().Update(ctx, d); err != nil {
			return err
		}
	case RoleEnterprise:
		e, err := uow.EnterpriseRepository().Get(ctx, cmd.PrincipalID())
		if err != nil {
			return err
		}
		e.FCMToken = cmd.Token()
		if err := uow.EnterpriseRepository().Update(ctx, e); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
