// Package enterprise holds the sending company entity. Enterprises create
// delivery orders and receive assigned/delivered notifications; their
// registration workflow lives outside the dispatch core.
package enterprise

import (
	"github.com/google/uuid"

	"smartdelivery/internal/pkg/errs"
)

// Enterprise is a registered sender of delivery orders.
type Enterprise struct {
	ID    uuid.UUID
	Name  string
	Phone string
	Email string

	// PartnerRef identifies the enterprise in the host ERP's partner
	// registry, used as invoice metadata.
	PartnerRef string

	FCMToken     string
	PasswordHash string
}

// NewEnterprise registers an enterprise account.
func NewEnterprise(id uuid.UUID, name, phone, email, partnerRef, passwordHash string) (*Enterprise, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	return &Enterprise{
		ID:           id,
		Name:         name,
		Phone:        phone,
		Email:        email,
		PartnerRef:   partnerRef,
		PasswordHash: passwordHash,
	}, nil
}
