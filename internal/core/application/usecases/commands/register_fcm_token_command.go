package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrRegisterFCMTokenCommandIsNotConstructed is returned when a
// RegisterFCMTokenCommand was not created via its constructor.
var ErrRegisterFCMTokenCommandIsNotConstructed = errors.New(
	"RegisterFCMTokenCommand must be created via NewRegisterFCMTokenCommand constructor",
)

// PrincipalRole identifies which kind of account a token or credential
// belongs to.
type PrincipalRole string

const (
	RoleDriver     PrincipalRole = "driver"
	RoleEnterprise PrincipalRole = "enterprise"
)

// RegisterFCMTokenCommand binds a device token to a driver or sender account
// so it can receive push notifications.
type RegisterFCMTokenCommand struct {
	principalID uuid.UUID
	role        PrincipalRole
	token       string

	isConstructed bool
}

// NewRegisterFCMTokenCommand creates a token registration.
func NewRegisterFCMTokenCommand(principalID uuid.UUID, role PrincipalRole, token string) (RegisterFCMTokenCommand, error) {
	if principalID == uuid.Nil {
		return RegisterFCMTokenCommand{}, errors.New("principalID is required")
	}
	if role != RoleDriver && role != RoleEnterprise {
		return RegisterFCMTokenCommand{}, errors.New("role must be driver or enterprise")
	}
	if token == "" {
		return RegisterFCMTokenCommand{}, errors.New("token is required")
	}
	return RegisterFCMTokenCommand{
		principalID:   principalID,
		role:          role,
		token:         token,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterFCMTokenCommand) Validate() error {
	if !c.isConstructed {
		return ErrRegisterFCMTokenCommandIsNotConstructed
	}
	return nil
}

// PrincipalID returns the account the token belongs to.
func (c RegisterFCMTokenCommand) PrincipalID() uuid.UUID { return c.principalID }

// Role returns the kind of account.
func (c RegisterFCMTokenCommand) Role() PrincipalRole { return c.role }

// Token returns the device token.
func (c RegisterFCMTokenCommand) Token() string { return c.token }
