package queries

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrGetOrderQueryIsNotConstructed is returned when a GetOrderQuery was not
// created via its constructor.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full view of one order: lifecycle state,
// dispatch bookkeeping, proof-of-delivery progress and the billing summary.
type GetOrderQuery struct {
	orderID uuid.UUID

	isConstructed bool
}

// NewGetOrderQuery creates an order detail lookup.
func NewGetOrderQuery(orderID uuid.UUID) (GetOrderQuery, error) {
	if orderID == uuid.Nil {
		return GetOrderQuery{}, errors.New("orderID is required")
	}
	return GetOrderQuery{orderID: orderID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOrderQueryIsNotConstructed
	}
	return nil
}

// OrderID returns the looked-up order.
func (q GetOrderQuery) OrderID() uuid.UUID { return q.orderID }

// ConditionSummary is the proof-of-delivery progress of an order. Evidence
// blobs are never exposed through the read side, only their presence.
// OTPIssued reports whether a server OTP exists for the order; the
// requirement flags themselves live on the order view.
type ConditionSummary struct {
	OTPIssued      bool
	OTPVerified    bool
	HasSignature   bool
	HasPhoto       bool
	BiometricScore *float64
	Validated      bool
}

// BillingSummary is the charge view of a delivered order.
type BillingSummary struct {
	DistanceKM  float64
	BaseTariff  float64
	ExtraFee    float64
	TotalAmount float64
	InvoiceRef  string
	State       string
}

// GetOrderQueryResponse is the full order view.
type GetOrderQueryResponse struct {
	ID            uuid.UUID
	Reference     string
	ExternalRef   string
	SectorType    string
	SenderID      uuid.UUID
	SenderName    string
	ReceiverName  string
	ReceiverPhone string

	PickupLat  float64
	PickupLong float64
	DropLat    float64
	DropLong   float64
	DistanceKM float64

	RequireOTP       bool
	RequireSignature bool
	RequirePhoto     bool
	RequireBiometric bool

	Status           string
	AssignedDriverID *uuid.UUID
	FailureReason    string
	CancelReason     string

	NotifiedDrivers   int
	DispatchStartTime *time.Time
	FirstDispatchTime *time.Time
	CreatedAt         time.Time

	// Condition is nil when the order has no proof-of-delivery record.
	Condition *ConditionSummary

	// Billing is nil until the billing trigger has run.
	Billing *BillingSummary
}
