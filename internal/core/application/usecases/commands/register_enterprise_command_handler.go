package commands

import (
	"context"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/enterprise"
)

// RegisterEnterpriseCommandHandler enrolls sender accounts.
type RegisterEnterpriseCommandHandler struct {
	uowFactory UoWFactory
}

// NewRegisterEnterpriseCommandHandler creates a handler for sender
// enrollments.
func NewRegisterEnterpriseCommandHandler(uowFactory UoWFactory) RegisterEnterpriseCommandHandler {
	return RegisterEnterpriseCommandHandler{uowFactory: uowFactory}
}

// Handle persists the new sender account and returns its identifier.
func (h RegisterEnterpriseCommandHandler) Handle(ctx context.Context, cmd RegisterEnterpriseCommand) (uuid.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return uuid.Nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return uuid.Nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	e, err := enterprise.NewEnterprise(
		uuid.New(),
		cmd.Name(),
		cmd.Phone(),
		cmd.Email(),
		cmd.PartnerRef(),
		cmd.PasswordHash(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	if err := uow.EnterpriseRepository().Add(ctx, e); err != nil {
		return uuid.Nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return e.ID, nil
}
