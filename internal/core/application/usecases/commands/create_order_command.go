package commands

import (
	"errors"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/kernel"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a
// CreateOrderCommand was not created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// RequirementOverrides optionally replaces the sector rule's default
// requirement flags for a single order. Nil fields keep the rule's value.
type RequirementOverrides struct {
	OTP       *bool
	Signature *bool
	Photo     *bool
	Biometric *bool
}

// CreateOrderCommand registers a new delivery order for a sender.
type CreateOrderCommand struct {
	senderID      uuid.UUID
	externalRef   string
	sectorType    string
	receiverName  string
	receiverPhone string
	pickup        kernel.GeoPoint
	drop          kernel.GeoPoint
	overrides     RequirementOverrides

	// batchSize of 0 keeps the engine default.
	batchSize int

	// preAssignedDriverID of uuid.Nil means no pre-assignment.
	preAssignedDriverID uuid.UUID

	isConstructed bool
}

// NewCreateOrderCommand creates an order registration. SectorType, receiver
// identity and both coordinates are mandatory; the rest is optional.
func NewCreateOrderCommand(
	senderID uuid.UUID,
	externalRef string,
	sectorType string,
	receiverName string,
	receiverPhone string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	overrides RequirementOverrides,
	batchSize int,
	preAssignedDriverID uuid.UUID,
) (CreateOrderCommand, error) {
	if senderID == uuid.Nil {
		return CreateOrderCommand{}, errors.New("senderID is required")
	}
	if sectorType == "" {
		return CreateOrderCommand{}, errors.New("sectorType is required")
	}
	if receiverName == "" {
		return CreateOrderCommand{}, errors.New("receiverName is required")
	}
	if receiverPhone == "" {
		return CreateOrderCommand{}, errors.New("receiverPhone is required")
	}
	if pickup.IsZero() || drop.IsZero() {
		return CreateOrderCommand{}, errors.New("pickup and drop coordinates are required")
	}
	if batchSize < 0 {
		return CreateOrderCommand{}, errors.New("batchSize must not be negative")
	}
	return CreateOrderCommand{
		senderID:            senderID,
		externalRef:         externalRef,
		sectorType:          sectorType,
		receiverName:        receiverName,
		receiverPhone:       receiverPhone,
		pickup:              pickup,
		drop:                drop,
		overrides:           overrides,
		batchSize:           batchSize,
		preAssignedDriverID: preAssignedDriverID,
		isConstructed:       true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrCreateOrderCommandIsNotConstructed
	}
	return nil
}

func (c CreateOrderCommand) SenderID() uuid.UUID              { return c.senderID }
func (c CreateOrderCommand) ExternalRef() string              { return c.externalRef }
func (c CreateOrderCommand) SectorType() string               { return c.sectorType }
func (c CreateOrderCommand) ReceiverName() string             { return c.receiverName }
func (c CreateOrderCommand) ReceiverPhone() string            { return c.receiverPhone }
func (c CreateOrderCommand) Pickup() kernel.GeoPoint          { return c.pickup }
func (c CreateOrderCommand) Drop() kernel.GeoPoint            { return c.drop }
func (c CreateOrderCommand) Overrides() RequirementOverrides  { return c.overrides }
func (c CreateOrderCommand) BatchSize() int                   { return c.batchSize }
func (c CreateOrderCommand) PreAssignedDriverID() uuid.UUID   { return c.preAssignedDriverID }
