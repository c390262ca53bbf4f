package commands

import "errors"

// ErrRegisterEnterpriseCommandIsNotConstructed is returned when a
// RegisterEnterpriseCommand was not created via its constructor.
var ErrRegisterEnterpriseCommandIsNotConstructed = errors.New(
	"RegisterEnterpriseCommand must be created via NewRegisterEnterpriseCommand constructor",
)

// RegisterEnterpriseCommand enrolls a sender account.
type RegisterEnterpriseCommand struct {
	name         string
	phone        string
	email        string
	partnerRef   string
	passwordHash string

	isConstructed bool
}

// NewRegisterEnterpriseCommand creates a sender enrollment. PartnerRef is
// the counterpart handle in the host ERP, optional at registration.
func NewRegisterEnterpriseCommand(name, phone, email, partnerRef, passwordHash string) (RegisterEnterpriseCommand, error) {
	if name == "" {
		return RegisterEnterpriseCommand{}, errors.New("name is required")
	}
	if email == "" {
		return RegisterEnterpriseCommand{}, errors.New("email is required")
	}
	return RegisterEnterpriseCommand{
		name:          name,
		phone:         phone,
		email:         email,
		partnerRef:    partnerRef,
		passwordHash:  passwordHash,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterEnterpriseCommand) Validate() error {
	if !c.isConstructed {
		return ErrRegisterEnterpriseCommandIsNotConstructed
	}
	return nil
}

func (c RegisterEnterpriseCommand) Name() string         { return c.name }
func (c RegisterEnterpriseCommand) Phone() string        { return c.phone }
func (c RegisterEnterpriseCommand) Email() string        { return c.email }
func (c RegisterEnterpriseCommand) PartnerRef() string   { return c.partnerRef }
func (c RegisterEnterpriseCommand) PasswordHash() string { return c.passwordHash }
